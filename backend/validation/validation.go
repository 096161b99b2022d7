package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"project/backend/models"
)

// Validate is the shared validator instance. Field names in error maps come
// from JSON tags so the editor can attach messages to its own form fields.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterStructValidation(lessonStructValidation, models.LessonInput{})

	return v
}

// lessonStructValidation enforces the type-conditional lesson contract:
// VIDEO, DOCUMENT and LAB lessons require an uploaded content reference,
// QUIZ lessons require a quiz reference.
func lessonStructValidation(sl validator.StructLevel) {
	lesson := sl.Current().Interface().(models.LessonInput)

	switch lesson.Type {
	case models.LessonTypeVideo, models.LessonTypeDocument, models.LessonTypeLab:
		if lesson.ContentURL == "" {
			sl.ReportError(lesson.ContentURL, "contentUrl", "ContentURL", "required_for_type", lesson.Type)
		}
	case models.LessonTypeQuiz:
		if lesson.QuizID == 0 {
			sl.ReportError(lesson.QuizID, "quizId", "QuizID", "required_for_type", lesson.Type)
		}
	}
}

// Check validates a payload and, on failure, returns a field -> message map
// ready to render under the corresponding form fields.
func Check(payload interface{}) map[string]string {
	err := Validate.Struct(payload)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"payload": err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s entries", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "required_for_type":
		return fmt.Sprintf("this field is required for %s lessons", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
