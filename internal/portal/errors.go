package portal

import (
	"errors"
	"fmt"
)

// InputError is a user input rejected before any backend call.
type InputError struct {
	// Field is the offending form field, empty when not tied to one.
	Field string
	msg   string
}

func (e *InputError) Error() string {
	return e.msg
}

var (
	// ErrEmptySubDomain is returned by Search for a blank query.
	ErrEmptySubDomain = &InputError{Field: "q", msg: "도메인 이름을 입력하세요."}
	// ErrNoSelection is returned when no subdomain and zone are selected.
	ErrNoSelection = &InputError{msg: "선택된 도메인이 없습니다. 검색 또는 내 도메인에서 도메인을 선택하세요."}
	// ErrLeavePhrase is returned by Leave when the confirmation does not match.
	ErrLeavePhrase = &InputError{Field: "confirm", msg: "확인 문구가 일치하지 않습니다."}
)

// missingField builds the error for a required submission field.
func missingField(field, recordType string) *InputError {
	switch field {
	case "Content":
		return &InputError{Field: "content", msg: fmt.Sprintf("%s 값을 입력해주세요.", recordType)}
	case "Type":
		return &InputError{Field: "type", msg: "레코드 타입을 선택해주세요."}
	default:
		return &InputError{Field: "domain", msg: ErrNoSelection.msg}
	}
}

// IsInputError reports whether err was raised by input validation.
func IsInputError(err error) bool {
	var in *InputError
	return errors.As(err, &in)
}
