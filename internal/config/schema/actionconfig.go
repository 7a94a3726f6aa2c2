package schema

// Patterns shared between the document schema and loader diagnostics.
const (
	// VersionPattern is the semver pattern the document version must match.
	VersionPattern = `\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?`

	// IDPattern constrains action ids.
	IDPattern = `[a-zA-Z][a-zA-Z0-9_-]*`

	// KeyPattern constrains key tokens: one printable character or a
	// named key, with optional modifier prefixes.
	KeyPattern = `(?:(?:ctrl|alt|shift|meta)\+)*(?:[!-~]|space|esc|tab|enter|backspace|delete|up|down|left|right|pgup|pgdown|home|end|f(?:[1-9]|1[0-2]))`

	// EnvNamePattern constrains environment variable names.
	EnvNamePattern = `[A-Z][A-Z0-9_]*`
)

// Shells are the allowed values for environment.shell.
var Shells = []string{"sh", "bash", "zsh", "fish"}

// Document returns the schema for a whole action-config document.
// Each call returns a fresh schema the caller may modify.
func Document() *Schema {
	return &Schema{
		Type:                 TypeObject,
		Required:             []string{"version"},
		AdditionalProperties: false,
		Properties: map[string]*Schema{
			"version": {Type: TypeString, Pattern: VersionPattern},
			"metadata": {
				Type:                 TypeObject,
				AdditionalProperties: false,
				Properties: map[string]*Schema{
					"name":        {Type: TypeString},
					"description": {Type: TypeString},
					"author":      {Type: TypeString},
					"created":     {Type: TypeString},
					"modified":    {Type: TypeString},
				},
			},
			"actions": {Type: TypeArray, Items: Action()},
			"keyBindings": {
				Type:          TypeObject,
				PropertyNames: &Schema{Type: TypeString, Pattern: KeyPattern},
				ValueSchema:   &Schema{Type: TypeString, Pattern: IDPattern},
			},
			"environment": {
				Type:                 TypeObject,
				AdditionalProperties: false,
				Properties: map[string]*Schema{
					"variables": {
						Type:          TypeObject,
						PropertyNames: &Schema{Type: TypeString, Pattern: EnvNamePattern},
						ValueSchema:   &Schema{Type: TypeString},
					},
					"timeout": {Type: TypeInteger, Minimum: Float64(0), Maximum: Float64(600000)},
					"shell":   {Type: TypeString, Enum: Shells},
				},
			},
		},
	}
}

// Action returns the schema for one action definition.
func Action() *Schema {
	return &Schema{
		Type:                 TypeObject,
		Required:             []string{"id", "description", "key", "script"},
		AdditionalProperties: false,
		Properties: map[string]*Schema{
			"id":              {Type: TypeString, Pattern: IDPattern},
			"name":            {Type: TypeString},
			"description":     {Type: TypeString, MinLength: 1},
			"key":             {Type: TypeString, Pattern: KeyPattern},
			"alternativeKeys": {Type: TypeArray, Items: &Schema{Type: TypeString, Pattern: KeyPattern}},
			"script": {OneOf: []*Schema{
				{Type: TypeString, MinLength: 1},
				Command(),
			}},
			"when": {
				Type:                 TypeObject,
				AdditionalProperties: false,
				Properties: map[string]*Schema{
					"fileTypes":    {Type: TypeArray, Items: &Schema{Type: TypeString}},
					"hasSelection": {Type: TypeBoolean},
					"lineCount": {
						Type:                 TypeObject,
						AdditionalProperties: false,
						Properties: map[string]*Schema{
							"min": {Type: TypeInteger, Minimum: Float64(0)},
							"max": {Type: TypeInteger, Minimum: Float64(0)},
						},
					},
					"mode": {Type: TypeString},
				},
			},
			"category":      {Type: TypeString},
			"dangerous":     {Type: TypeBoolean},
			"confirmPrompt": {Type: TypeString},
			"priority":      {Type: TypeInteger},
			"enabled":       {Type: TypeBoolean},
		},
	}
}

// Command returns the schema for a structured command. Sequences nest
// through the same schema.
func Command() *Schema {
	cmd := &Schema{
		Type:                 TypeObject,
		Required:             []string{"type"},
		AdditionalProperties: false,
		Properties: map[string]*Schema{
			"type":             {Type: TypeString, Enum: []string{"builtin", "external", "script", "sequence"}},
			"builtin":          {Type: TypeString},
			"command":          {Type: TypeString},
			"args":             {Type: TypeArray, Items: &Schema{Type: TypeString}},
			"timeout":          {Type: TypeInteger, Minimum: Float64(0)},
			"environment":      {Type: TypeObject, ValueSchema: &Schema{Type: TypeString}},
			"workingDirectory": {Type: TypeString},
		},
	}
	// Nested sequences reuse the command schema itself.
	cmd.Properties["sequence"] = &Schema{Type: TypeArray, Items: cmd}
	return cmd
}
