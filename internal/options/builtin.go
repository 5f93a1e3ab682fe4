// internal/options/builtin.go
package options

import "fmt"

type FieldType string

const (
	FieldProfession    FieldType = "profession"
	FieldQualification FieldType = "qualification"
	FieldHeight        FieldType = "height"
	FieldGender        FieldType = "gender"
)

func (f FieldType) Valid() bool {
	switch f {
	case FieldProfession, FieldQualification, FieldHeight, FieldGender:
		return true
	}
	return false
}

var builtinProfessions = []string{
	"Doctor", "Engineer", "Teacher", "Business Owner", "Government Employee",
	"Private Employee", "Lawyer", "Accountant", "Student", "Other",
}

var builtinGenders = []string{"Male", "Female"}

// builtinHeights lists 4'10" through 6'5" in one inch steps.
var builtinHeights = func() []string {
	var out []string
	for in := 4*12 + 10; in <= 6*12+5; in++ {
		out = append(out, fmt.Sprintf(`%d'%d"`, in/12, in%12))
	}
	return out
}()

// Builtin returns the fixed dropdown values for a field. Qualification has none.
func Builtin(field FieldType) []string {
	switch field {
	case FieldProfession:
		return append([]string(nil), builtinProfessions...)
	case FieldHeight:
		return append([]string(nil), builtinHeights...)
	case FieldGender:
		return append([]string(nil), builtinGenders...)
	}
	return nil
}
