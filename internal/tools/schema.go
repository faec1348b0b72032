package tools

// Param is one property of a tool's JSON Schema.
type Param struct {
	Name        string
	Type        string
	Description string
	Required    bool
}

// Schema builds a JSON Schema object from params.
func Schema(params ...Param) map[string]any {
	props := make(map[string]any, len(params))
	required := []string{}
	for _, p := range params {
		prop := map[string]any{"type": p.Type}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		if p.Type == "array" {
			prop["items"] = map[string]any{"type": "string"}
		}
		props[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// UserID is the user_id parameter every per-user tool takes.
var UserID = Param{Name: "user_id", Type: "string", Description: "User email", Required: true}
