package instances

import "testing"

func TestQualifiedType_String(t *testing.T) {
	tests := []struct {
		name string
		qt   QualifiedType
		want string
	}{
		{"plain", QualifiedType{Name: "Image"}, "Image"},
		{"const", QualifiedType{Name: "Image", Const: true}, "const Image"},
		{"volatile", QualifiedType{Name: "Image", Volatile: true}, "volatile Image"},
		{"both", QualifiedType{Name: "Image", Const: true, Volatile: true}, "const volatile Image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.qt.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsTemporary(t *testing.T) {
	if !IsTemporary(TempPrefix + "0") {
		t.Error("prefixed name should be temporary")
	}
	if IsTemporary("temp0") {
		t.Error("unprefixed name should not be temporary")
	}
	if IsTemporary("") {
		t.Error("empty name should not be temporary")
	}
}
