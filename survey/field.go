package survey

// FieldType discriminates which renderer and validation rule apply to a
// field. Options only make sense for radio/select, rows+columns only for
// matrix; use the constructors below instead of filling FieldDefinition
// by hand.
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeTextarea FieldType = "textarea"
	TypeRadio    FieldType = "radio"
	TypeSelect   FieldType = "select"
	TypeMatrix   FieldType = "matrix"
)

// Option is one answer choice of a radio/select field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// MatrixRow is one sub-question of a matrix field.
type MatrixRow struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// MatrixColumn is one answer choice shared by every row of a matrix field.
type MatrixColumn struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Emoji string `json:"emoji,omitempty"`
}

// ConditionalRequired makes a field required only while the answer to
// DependsOn is NOT one of SkipValues. A field supports exactly one
// dependency with one skip-list; nothing in the schema needs more.
type ConditionalRequired struct {
	DependsOn  string   `json:"dependsOn"`
	SkipValues []string `json:"skipValues"`
}

// FieldDefinition is the authored description of one survey question.
// Immutable from the respondent's perspective.
type FieldDefinition struct {
	Section     string               `json:"section"`
	Name        string               `json:"name"`
	Type        FieldType            `json:"type"`
	Label       string               `json:"label"`
	Required    bool                 `json:"required"`
	Instruction string               `json:"instruction,omitempty"`

	ConditionalRequired *ConditionalRequired `json:"conditionalRequired,omitempty"`

	// ShowIf maps another field's name to the values under which this
	// field is visible. All entries must match (logical AND).
	ShowIf map[string][]string `json:"showIf,omitempty"`

	Options []Option       `json:"options,omitempty"`
	Rows    []MatrixRow    `json:"rows,omitempty"`
	Columns []MatrixColumn `json:"columns,omitempty"`
}

// AnswerMap holds the respondent's answers keyed by field name. Matrix
// answers nest a map of row name to column value.
type AnswerMap map[string]any

// TextField builds a text or textarea field.
func TextField(section, name, label string, required bool, multiline bool) FieldDefinition {
	t := TypeText
	if multiline {
		t = TypeTextarea
	}
	return FieldDefinition{Section: section, Name: name, Type: t, Label: label, Required: required}
}

// ChoiceField builds a radio or select field over the given options.
func ChoiceField(t FieldType, section, name, label string, required bool, options []Option) FieldDefinition {
	return FieldDefinition{Section: section, Name: name, Type: t, Label: label, Required: required, Options: options}
}

// MatrixField builds a matrix field: rows share one set of columns.
func MatrixField(section, name, label string, required bool, rows []MatrixRow, columns []MatrixColumn) FieldDefinition {
	return FieldDefinition{Section: section, Name: name, Type: TypeMatrix, Label: label, Required: required, Rows: rows, Columns: columns}
}

// SkipWhen attaches a conditional-requirement rule and returns the field.
func (f FieldDefinition) SkipWhen(dependsOn string, skipValues ...string) FieldDefinition {
	f.ConditionalRequired = &ConditionalRequired{DependsOn: dependsOn, SkipValues: skipValues}
	return f
}

// WithInstruction sets the free text shown above the field.
func (f FieldDefinition) WithInstruction(s string) FieldDefinition {
	f.Instruction = s
	return f
}
