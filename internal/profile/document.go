package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"gopkg.in/yaml.v3"

	"github.com/accesstwin/accesstwin/internal/model"
)

// Document is everything the aggregator needs for one student.
type Document struct {
	Profile      model.StudentProfile
	Supports     []model.SupportEntry
	TrackingLogs []model.TrackingLog
}

// Format names a document encoding.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

type documentFile struct {
	Profile      profileDoc   `json:"profile" yaml:"profile"`
	Supports     []supportDoc `json:"supports" yaml:"supports" validate:"dive"`
	TrackingLogs []logDoc     `json:"tracking_logs" yaml:"tracking_logs" validate:"dive"`
}

type profileDoc struct {
	ID           int64          `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	Strengths    model.ItemList `json:"strengths" yaml:"strengths"`
	Supports     model.ItemList `json:"supports" yaml:"supports"`
	History      model.ItemList `json:"history" yaml:"history"`
	Goals        model.ItemList `json:"goals" yaml:"goals"`
	Stakeholders model.ItemList `json:"stakeholders" yaml:"stakeholders"`
	Hopes        string         `json:"hopes" yaml:"hopes"`
}

type supportDoc struct {
	ID            int64    `json:"id" yaml:"id"`
	Category      string   `json:"category" yaml:"category" validate:"required,support_category"`
	Subcategory   string   `json:"subcategory" yaml:"subcategory"`
	Description   string   `json:"description" yaml:"description"`
	UDLTags       []string `json:"udl_tags" yaml:"udl_tags"`
	POURTags      []string `json:"pour_tags" yaml:"pour_tags"`
	Effectiveness *int     `json:"effectiveness" yaml:"effectiveness" validate:"omitempty,min=1,max=5"`
	Status        string   `json:"status" yaml:"status" validate:"omitempty,oneof=active paused completed archived"`
}

type logDoc struct {
	ID        int64     `json:"id" yaml:"id"`
	SupportID int64     `json:"support_id" yaml:"support_id"`
	LoggedBy  string    `json:"logged_by" yaml:"logged_by" validate:"omitempty,oneof=student teacher"`
	Kind      string    `json:"kind" yaml:"kind" validate:"omitempty,oneof=implementation outcome"`
	Note      string    `json:"note" yaml:"note"`
	LoggedAt  time.Time `json:"logged_at" yaml:"logged_at"`
}

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New()

	english := en.New()
	uni := ut.New(english, english)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Report document field names, not Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("support_category", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseSupportCategory(fl.Field().String())
		return ok
	})
	_ = validate.RegisterTranslation("support_category", translator,
		func(ut.Translator) error { return nil },
		func(_ ut.Translator, fe validator.FieldError) string {
			return fmt.Sprintf("%s must be one of the seven support categories, got %q", fe.Field(), fe.Value())
		},
	)
}

// FormatForPath picks a format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported document extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// Load reads and validates a document from disk.
func Load(path string) (Document, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return Document{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read document: %w", err)
	}
	doc, err := Parse(data, format)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes and validates a document. Malformed profile items are
// tolerated; structural errors and invalid support fields are not.
func Parse(data []byte, format Format) (Document, error) {
	var file documentFile
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &file); err != nil {
			return Document{}, fmt.Errorf("failed to decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return Document{}, fmt.Errorf("failed to decode yaml: %w", err)
		}
	default:
		return Document{}, fmt.Errorf("unknown document format %q", format)
	}
	if err := validateFile(file); err != nil {
		return Document{}, err
	}
	return file.toDocument(), nil
}

func validateFile(file documentFile) error {
	err := validate.Struct(file)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate document: %w", err)
	}
	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, fmt.Errorf("%s: %s", trimNamespace(fe.Namespace()), fe.Translate(translator)))
	}
	return fmt.Errorf("invalid document: %w", errors.Join(errs...))
}

func trimNamespace(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func (f documentFile) toDocument() Document {
	doc := Document{
		Profile: model.StudentProfile{
			ID:           f.Profile.ID,
			Name:         f.Profile.Name,
			Strengths:    f.Profile.Strengths,
			SupportNotes: f.Profile.Supports,
			History:      f.Profile.History,
			Goals:        f.Profile.Goals,
			Stakeholders: f.Profile.Stakeholders,
			Hopes:        f.Profile.Hopes,
		},
		Supports:     make([]model.SupportEntry, 0, len(f.Supports)),
		TrackingLogs: make([]model.TrackingLog, 0, len(f.TrackingLogs)),
	}
	for _, s := range f.Supports {
		category, _ := model.ParseSupportCategory(s.Category)
		doc.Supports = append(doc.Supports, model.SupportEntry{
			ID:            s.ID,
			Category:      category,
			Subcategory:   s.Subcategory,
			Description:   s.Description,
			UDLTags:       s.UDLTags,
			POURTags:      s.POURTags,
			Effectiveness: s.Effectiveness,
			Status:        model.SupportStatus(s.Status),
		})
	}
	for _, l := range f.TrackingLogs {
		doc.TrackingLogs = append(doc.TrackingLogs, model.TrackingLog{
			ID:        l.ID,
			SupportID: l.SupportID,
			LoggedBy:  model.Role(l.LoggedBy),
			Kind:      model.LogKind(l.Kind),
			Note:      l.Note,
			LoggedAt:  l.LoggedAt,
		})
	}
	return doc
}
