package types

import "testing"

func TestIsCompatibleWithSelf(t *testing.T) {
	for _, ty := range []Type{Int, Float, Double, Boolean, String, Void, Null, Class("Foo")} {
		if !IsCompatibleWith(ty, ty) {
			t.Errorf("%s should be compatible with itself", ty)
		}
	}
}

func TestNumericWidening(t *testing.T) {
	tests := []struct {
		from, to Type
		want     bool
	}{
		{Int, Float, true},
		{Int, Double, true},
		{Float, Double, true},
		{Double, Float, false},
		{Double, Int, false},
		{Float, Int, false},
	}
	for _, tt := range tests {
		got := IsCompatibleWith(tt.from, tt.to)
		if got != tt.want {
			t.Errorf("IsCompatibleWith(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestNullCompatibility(t *testing.T) {
	if !IsCompatibleWith(Null, Class("Widget")) {
		t.Error("null should be assignable to a class type")
	}
	if !IsCompatibleWith(Null, String) {
		t.Error("null should be assignable to String")
	}
	for _, ty := range []Type{Int, Float, Double, Boolean, Void} {
		if IsCompatibleWith(Null, ty) {
			t.Errorf("null should not be assignable to %s", ty)
		}
	}
}

func TestVoidIsOnlyCompatibleWithItself(t *testing.T) {
	if !IsCompatibleWith(Void, Void) {
		t.Error("void should be compatible with itself")
	}
	for _, ty := range []Type{Int, Boolean, String, Null, Class("Foo")} {
		if IsCompatibleWith(Void, ty) || IsCompatibleWith(ty, Void) {
			t.Errorf("void should not be compatible with %s in either direction", ty)
		}
	}
}

func TestErrorAbsorbsEverything(t *testing.T) {
	for _, ty := range []Type{Int, Float, Double, Boolean, String, Void, Null, Class("Foo")} {
		if !IsCompatibleWith(Error, ty) {
			t.Errorf("Error should be compatible with %s", ty)
		}
		if !IsCompatibleWith(ty, Error) {
			t.Errorf("%s should be compatible with Error", ty)
		}
	}
}

func TestDistinctClassesIncompatible(t *testing.T) {
	if IsCompatibleWith(Class("Foo"), Class("Bar")) {
		t.Error("distinct class types should not be compatible")
	}
}

func TestRegistryResolveBuiltins(t *testing.T) {
	r := NewRegistry()
	tests := map[string]Type{
		"int": Int, "float": Float, "double": Double,
		"boolean": Boolean, "String": String, "void": Void,
	}
	for name, want := range tests {
		if got := r.Resolve(name); !Equal(got, want) {
			t.Errorf("Resolve(%q) = %s, want %s", name, got, want)
		}
	}
}

func TestRegistryResolveUnknownIsError(t *testing.T) {
	r := NewRegistry()
	if got := r.Resolve("Widget"); !got.IsError() {
		t.Errorf("Resolve of unregistered class should be Error, got %s", got)
	}
}

func TestRegistryRegisterAndResolveClass(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterClass("Widget"); err != nil {
		t.Fatalf("RegisterClass failed: %v", err)
	}
	got := r.Resolve("Widget")
	if !got.IsClass() || got.Name() != "Widget" {
		t.Errorf("Resolve(Widget) = %s, want class Widget", got)
	}
	if !r.HasClass("Widget") {
		t.Error("HasClass should report true after registration")
	}
}

func TestRegistryRejectsReservedClassName(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterClass("int"); err == nil {
		t.Error("expected an error registering a class named after a built-in")
	}
}
