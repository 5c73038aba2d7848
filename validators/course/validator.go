package courseValidator

import (
	"coursebuilder/middleware"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

const (
	notBlankTag = "notblank"
	uuidTag     = "uuid"
)

func init() {
	validate = validator.New()

	// english messages for tags without a field-specific message
	english := en.New()
	uni := ut.New(english, english)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// report JSON names instead of Go struct names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		return ok && strings.TrimSpace(str) != ""
	})
	// accept any form uuid.Parse does, so body ids match path ids
	_ = validate.RegisterValidation(uuidTag, func(fl validator.FieldLevel) bool {
		_, err := uuid.Parse(fl.Field().String())
		return err == nil
	})

	_ = validate.RegisterTranslation(notBlankTag, translator,
		func(trans ut.Translator) error {
			return trans.Add(notBlankTag, "{0} cannot be blank", true)
		},
		func(trans ut.Translator, fe validator.FieldError) string {
			msg, _ := trans.T(notBlankTag, fe.Field())
			return msg
		},
	)
}

// messages maps a JSON field name to the message reported for any failure on it
type messages map[string]string

// check validates req, preferring msgs over the generic translations
func check(req interface{}, msgs messages) []middleware.FieldError {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []middleware.FieldError{{Field: "", Message: err.Error()}}
	}

	details := make([]middleware.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := msgs[fe.Field()]
		if !ok {
			msg = fe.Translate(translator)
		}
		details = append(details, middleware.FieldError{Field: fieldPath(fe.Namespace()), Message: msg})
	}
	return details
}

// decode parses the JSON body into req, reporting every type mismatch by path
func decode(c *fiber.Ctx, req interface{}, msgs messages) []middleware.FieldError {
	err := c.BodyParser(req)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if details := typeMismatches(c.Body(), reflect.TypeOf(req), msgs); len(details) > 0 {
			return details
		}
		if typeErr.Field != "" {
			return []middleware.FieldError{{Field: typeErr.Field, Message: mismatchMessage(typeErr.Field, msgs, typeErr.Type.String(), typeErr.Value)}}
		}
	}
	return []middleware.FieldError{{Field: "", Message: "Invalid request body"}}
}

// typeMismatches walks the raw document against t and collects every value
// of the wrong JSON type
func typeMismatches(body []byte, t reflect.Type, msgs messages) []middleware.FieldError {
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil
	}
	var details []middleware.FieldError
	walkTypes("", t, doc, msgs, &details)
	return details
}

func walkTypes(path string, t reflect.Type, v interface{}, msgs messages, out *[]middleware.FieldError) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if v == nil {
		return
	}
	mismatch := func() {
		*out = append(*out, middleware.FieldError{Field: path, Message: mismatchMessage(path, msgs, jsonType(t), jsonValueType(v))})
	}

	switch t.Kind() {
	case reflect.String:
		if _, ok := v.(string); !ok {
			mismatch()
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := v.(float64)
		if !ok || n != math.Trunc(n) {
			mismatch()
		}
	case reflect.Slice:
		items, ok := v.([]interface{})
		if !ok {
			mismatch()
			return
		}
		for i, item := range items {
			walkTypes(joinPath(path, strconv.Itoa(i)), t.Elem(), item, msgs, out)
		}
	case reflect.Struct:
		obj, ok := v.(map[string]interface{})
		if !ok {
			mismatch()
			return
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				continue
			}
			if fv, ok := obj[name]; ok {
				walkTypes(joinPath(path, name), f.Type, fv, msgs, out)
			}
		}
	}
}

func mismatchMessage(path string, msgs messages, want, got string) string {
	if msg, ok := msgs[path[strings.LastIndex(path, ".")+1:]]; ok {
		return msg
	}
	return fmt.Sprintf("Expected %s, received %s", want, got)
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func jsonType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Slice:
		return "array"
	case reflect.Struct:
		return "object"
	default:
		return "integer"
	}
}

func jsonValueType(v interface{}) string {
	switch v.(type) {
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []interface{}:
		return "array"
	default:
		return "object"
	}
}

// fieldPath turns "Request.modules[1].moduleName" into "modules.1.moduleName"
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	namespace = strings.ReplaceAll(namespace, "[", ".")
	return strings.ReplaceAll(namespace, "]", "")
}

// isBulk reports whether the body is a list create: it carries listKey, or
// it has none of the itemKeys a single create would carry
func isBulk(body []byte, listKey string, itemKeys ...string) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return false
	}
	if _, ok := probe[listKey]; ok {
		return true
	}
	for _, key := range itemKeys {
		if _, ok := probe[key]; ok {
			return false
		}
	}
	return true
}
