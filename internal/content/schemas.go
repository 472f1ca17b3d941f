package content

// JSON Schemas for the catalog files. Validation runs once at load;
// the engine trusts catalog shape after that.

const resourcesSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "cap"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "name": {"type": "string", "minLength": 1},
      "initial": {"type": "integer", "minimum": 0},
      "cap": {"type": "integer", "minimum": 1}
    }
  }
}`

const recipesSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "inputs", "outputs", "duration_sec", "skill_required", "category"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "name": {"type": "string", "minLength": 1},
      "inputs": {
        "type": "object",
        "additionalProperties": {"type": "integer", "minimum": 1}
      },
      "outputs": {
        "type": "object",
        "additionalProperties": {
          "oneOf": [
            {"type": "integer", "minimum": 0},
            {
              "type": "array",
              "items": {"type": "integer", "minimum": 0},
              "minItems": 2,
              "maxItems": 2
            }
          ]
        }
      },
      "duration_sec": {"type": "integer", "minimum": 1},
      "skill_required": {
        "type": "object",
        "additionalProperties": {"type": "integer", "minimum": 1}
      },
      "tech_required": {"type": "string"},
      "category": {"enum": ["gathering", "crafting", "research", "exploration"]}
    }
  }
}`

const technologiesSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "cost"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "name": {"type": "string", "minLength": 1},
      "description": {"type": "string"},
      "researched": {"type": "boolean"},
      "cost": {
        "type": "object",
        "additionalProperties": {"type": "integer", "minimum": 1}
      },
      "unlocks": {"type": "array", "items": {"type": "string"}},
      "requirements": {"type": "array", "items": {"type": "string"}}
    }
  }
}`

const buildingsSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "levels"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "name": {"type": "string", "minLength": 1},
      "levels": {
        "type": "array",
        "minItems": 1,
        "items": {
          "type": "object",
          "required": ["level", "cost", "effects"],
          "properties": {
            "level": {"type": "integer", "minimum": 1},
            "cost": {
              "type": "object",
              "additionalProperties": {"type": "integer", "minimum": 1}
            },
            "requirements": {
              "type": "object",
              "additionalProperties": {"type": "integer", "minimum": 1}
            },
            "effects": {
              "type": "object",
              "additionalProperties": {"type": "number"}
            }
          }
        }
      }
    }
  }
}`

const skillTreeSchema = `{
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "required": ["name", "skills"],
    "properties": {
      "name": {"type": "string", "minLength": 1},
      "skills": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["id", "name", "max_level", "effects"],
          "properties": {
            "id": {"type": "string", "minLength": 1},
            "name": {"type": "string", "minLength": 1},
            "max_level": {"type": "integer", "minimum": 1},
            "effects": {
              "type": "object",
              "additionalProperties": {"type": ["number", "boolean"]}
            },
            "cost": {
              "type": "object",
              "additionalProperties": {"type": "integer", "minimum": 1}
            },
            "requires": {
              "type": "object",
              "properties": {
                "skill_level": {"type": "integer", "minimum": 1},
                "nodes": {
                  "type": "object",
                  "additionalProperties": {"type": "integer", "minimum": 1}
                }
              }
            }
          }
        }
      }
    }
  }
}`

const eventsSchema = `{
  "$defs": {
    "outcome": {
      "type": "object",
      "properties": {
        "log": {"type": "string"},
        "grants": {"type": "object", "additionalProperties": {"type": "integer", "minimum": 1}},
        "costs": {"type": "object", "additionalProperties": {"type": "integer", "minimum": 1}},
        "health": {"type": "integer"},
        "energy": {"type": "integer"},
        "skill_exp": {"type": "object", "additionalProperties": {"type": "integer", "minimum": 1}}
      }
    }
  },
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "weight"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "name": {"type": "string", "minLength": 1},
      "weight": {"type": "number", "exclusiveMinimum": 0},
      "min_day": {"type": "integer", "minimum": 0},
      "outcome": {"$ref": "#/$defs/outcome"},
      "skill_check": {
        "type": "object",
        "required": ["skill", "level", "success", "failure"],
        "properties": {
          "skill": {"type": "string"},
          "level": {"type": "integer", "minimum": 1},
          "success": {"$ref": "#/$defs/outcome"},
          "failure": {"$ref": "#/$defs/outcome"}
        }
      },
      "item_check": {
        "type": "object",
        "required": ["resource", "amount", "has", "lacks"],
        "properties": {
          "resource": {"type": "string"},
          "amount": {"type": "integer", "minimum": 1},
          "has": {"$ref": "#/$defs/outcome"},
          "lacks": {"$ref": "#/$defs/outcome"}
        }
      },
      "shelter_check": {
        "type": "object",
        "required": ["building", "min_level", "protected", "exposed"],
        "properties": {
          "building": {"type": "string"},
          "min_level": {"type": "integer", "minimum": 1},
          "protected": {"$ref": "#/$defs/outcome"},
          "exposed": {"$ref": "#/$defs/outcome"}
        }
      }
    }
  }
}`
