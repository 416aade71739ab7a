package models

import (
	"encoding/json"
	"time"

	"github.com/rllagas/csm-server/survey"
)

// SurveyField is one persisted row of the survey schema. Options, matrix
// rows/columns and the conditional rules are stored as JSON text columns;
// Definition and NewSurveyField convert to and from the engine's types.
type SurveyField struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Section         string    `gorm:"size:100;not null" json:"section"`
	Name            string    `gorm:"size:100;unique;not null" json:"name"`
	Type            string    `gorm:"size:20;not null" json:"type"`
	Label           string    `gorm:"type:text;not null" json:"label"`
	Required        bool      `gorm:"default:false" json:"required"`
	Instruction     string    `gorm:"type:text" json:"instruction"`
	ConditionalJSON string    `gorm:"column:conditional_json;type:text" json:"-"`
	OptionsJSON     string    `gorm:"column:options_json;type:text" json:"-"`
	RowsJSON        string    `gorm:"column:rows_json;type:text" json:"-"`
	ColumnsJSON     string    `gorm:"column:columns_json;type:text" json:"-"`
	SortOrder       int       `gorm:"default:0" json:"sort_order"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SurveyField) TableName() string {
	return "survey_fields"
}

// conditionalPayload bundles both rule kinds into one column.
type conditionalPayload struct {
	Required *survey.ConditionalRequired `json:"required,omitempty"`
	ShowIf   map[string][]string         `json:"showIf,omitempty"`
}

// Definition decodes the row into the engine's field type.
func (f SurveyField) Definition() (survey.FieldDefinition, error) {
	def := survey.FieldDefinition{
		Section:     f.Section,
		Name:        f.Name,
		Type:        survey.FieldType(f.Type),
		Label:       f.Label,
		Required:    f.Required,
		Instruction: f.Instruction,
	}
	if f.ConditionalJSON != "" {
		var cond conditionalPayload
		if err := json.Unmarshal([]byte(f.ConditionalJSON), &cond); err != nil {
			return def, err
		}
		def.ConditionalRequired = cond.Required
		def.ShowIf = cond.ShowIf
	}
	if f.OptionsJSON != "" {
		if err := json.Unmarshal([]byte(f.OptionsJSON), &def.Options); err != nil {
			return def, err
		}
	}
	if f.RowsJSON != "" {
		if err := json.Unmarshal([]byte(f.RowsJSON), &def.Rows); err != nil {
			return def, err
		}
	}
	if f.ColumnsJSON != "" {
		if err := json.Unmarshal([]byte(f.ColumnsJSON), &def.Columns); err != nil {
			return def, err
		}
	}
	return def, nil
}

// NewSurveyField encodes an engine field into a persistable row.
func NewSurveyField(def survey.FieldDefinition, sortOrder int) (SurveyField, error) {
	f := SurveyField{
		Section:     def.Section,
		Name:        def.Name,
		Type:        string(def.Type),
		Label:       def.Label,
		Required:    def.Required,
		Instruction: def.Instruction,
		SortOrder:   sortOrder,
	}
	if def.ConditionalRequired != nil || len(def.ShowIf) > 0 {
		b, err := json.Marshal(conditionalPayload{Required: def.ConditionalRequired, ShowIf: def.ShowIf})
		if err != nil {
			return f, err
		}
		f.ConditionalJSON = string(b)
	}
	if len(def.Options) > 0 {
		b, err := json.Marshal(def.Options)
		if err != nil {
			return f, err
		}
		f.OptionsJSON = string(b)
	}
	if len(def.Rows) > 0 {
		b, err := json.Marshal(def.Rows)
		if err != nil {
			return f, err
		}
		f.RowsJSON = string(b)
	}
	if len(def.Columns) > 0 {
		b, err := json.Marshal(def.Columns)
		if err != nil {
			return f, err
		}
		f.ColumnsJSON = string(b)
	}
	return f, nil
}
