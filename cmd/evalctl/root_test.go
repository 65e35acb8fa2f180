package main

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func assertOrder(t *testing.T, out string, want ...string) {
	t.Helper()
	last := -1
	for _, w := range want {
		i := strings.Index(out, w)
		if i < 0 {
			t.Fatalf("%q missing from:\n%s", w, out)
		}
		if i < last {
			t.Errorf("%q out of order in:\n%s", w, out)
		}
		last = i
	}
}

func TestUsers_SortedPage(t *testing.T) {
	out, err := run(t, "users", "--sort", "nombre", "--dir", "desc", "--page-size", "3")
	if err != nil {
		t.Fatal(err)
	}
	assertOrder(t, out, "Usuario ▼", "Pedro Ruiz", "María Torres", "Juan García")
	if strings.Contains(out, "Ana López") {
		t.Error("row from page 2 printed")
	}
	if !strings.Contains(out, "Página 1 de 2 · 5 registros") {
		t.Errorf("pager line missing:\n%s", out)
	}
}

func TestUsers_SecondPage(t *testing.T) {
	out, err := run(t, "users", "--sort", "nombre", "--dir", "desc", "--page-size", "3", "--page", "2")
	if err != nil {
		t.Fatal(err)
	}
	assertOrder(t, out, "Carlos Méndez", "Ana López")
	if strings.Contains(out, "Pedro Ruiz") {
		t.Error("row from page 1 printed")
	}
}

func TestUsers_Unsorted(t *testing.T) {
	out, err := run(t, "users")
	if err != nil {
		t.Fatal(err)
	}
	assertOrder(t, out, "Juan García", "Ana López", "Carlos Méndez", "María Torres", "Pedro Ruiz")
	if strings.Contains(out, "Página") {
		t.Error("single page printed a pager line")
	}
}

func TestUsers_Search(t *testing.T) {
	out, err := run(t, "users", "--search", "zzz")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Sin resultados") {
		t.Errorf("empty message missing:\n%s", out)
	}
}

func TestCourses_SortByProgress(t *testing.T) {
	out, err := run(t, "courses", "--sort", "progreso", "--dir", "desc")
	if err != nil {
		t.Fatal(err)
	}
	assertOrder(t, out, "ING-102", "PRG-205", "MAT-301", "FIS-401")
}

func TestList_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown column", []string{"users", "--sort", "acciones"}, "cannot sort by"},
		{"unsortable column", []string{"courses", "--sort", "proxEval"}, "sortable columns are codigo"},
		{"bad direction", []string{"tickets", "--sort", "id", "--dir", "sideways"}, "invalid --dir"},
		{"negative page size", []string{"grades", "--page-size", "-1"}, "invalid --page-size"},
		{"positional args", []string{"evaluations", "extra"}, "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}
