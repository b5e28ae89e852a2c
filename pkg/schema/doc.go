// Package schema implements the schema registry and the schema-driven
// validation and field authorization engine.
//
// A schema is a JSON-Schema document whose properties carry extra keys:
//
//	{
//	  "properties": {
//	    "work_email": {
//	      "type": "string",
//	      "validators": "not_empty email_validator",
//	      "show": "admin hr member",
//	      "update": "admin hr",
//	      "group_label": "Contact"
//	    },
//	    "role": {
//	      "validators": "ignore_missing",
//	      "options": [{"value": "admin", "text": "Admin"}]
//	    }
//	  }
//	}
//
// validators names registered validators applied in order. show and update
// are space separated role lists checked by token membership. options is an
// allow-list for the value; it is waived for empty values when the chain
// contains ignore_missing.
//
// Schemas are loaded from an fs.FS, usually an embed.FS owned by the
// extension:
//
//	//go:embed schemas
//	var schemaFS embed.FS
//
//	err := schemas.Register(schemaFS, "schemas", "employee_schema.json", "employee_schema")
//
// [Registry.Get] returns a deep copy, so callers may modify the result freely
// while other requests validate against the same schema.
package schema
