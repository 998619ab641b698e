package seed

// SchemaURL identifies the embedded board schema.
const SchemaURL = "https://github.com/nibzard/doable-go/schema/board.schema.json"

// Schema is the JSON Schema for seed and snapshot files.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/nibzard/doable-go/schema/board.schema.json",
  "title": "doable board",
  "type": "object",
  "properties": {
    "todo": { "$ref": "#/$defs/column" },
    "doing": { "$ref": "#/$defs/column" },
    "done": { "$ref": "#/$defs/column" }
  },
  "additionalProperties": false,
  "$defs": {
    "column": {
      "type": "array",
      "items": { "$ref": "#/$defs/task" }
    },
    "task": {
      "type": "object",
      "required": ["id", "title"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "title": { "type": "string" },
        "description": { "type": "string" },
        "status": { "enum": ["todo", "doing", "done"] }
      },
      "additionalProperties": false
    }
  }
}`
