package jsonstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/idilsaglam/farah/internal/store"
)

func TestGetMissing(t *testing.T) {
	d := New(filepath.Join(t.TempDir(), "not-yet"))
	v, ok, err := d.GetItem("wedding-checked")
	if err != nil || ok || v != "" {
		t.Fatalf("GetItem = %q, %v, %v; want absent", v, ok, err)
	}
}

func TestSetGetRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	d := New(dir)

	if err := d.SetItem("wedding-checked", `{"farah-1":true}`); err != nil {
		t.Fatalf("SetItem: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "wedding-checked.json"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != `{"farah-1":true}` {
		t.Errorf("file = %s", b)
	}

	v, ok, err := d.GetItem("wedding-checked")
	if err != nil || !ok || v != `{"farah-1":true}` {
		t.Errorf("GetItem = %q, %v, %v", v, ok, err)
	}

	if err := d.SetItem("wedding-checked", `{}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _, _ := d.GetItem("wedding-checked"); v != `{}` {
		t.Errorf("after overwrite = %q", v)
	}

	if err := d.RemoveItem("wedding-checked"); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if _, ok, _ := d.GetItem("wedding-checked"); ok {
		t.Error("key present after RemoveItem")
	}
	if err := d.RemoveItem("wedding-checked"); err != nil {
		t.Errorf("second RemoveItem: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestInvalidKeys(t *testing.T) {
	d := New(t.TempDir())
	for _, key := range []string{"", ".", "..", "a/b", `a\b`, "../escape"} {
		if err := d.SetItem(key, "x"); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("SetItem(%q) err = %v, want ErrInvalidKey", key, err)
		}
		if _, _, err := d.GetItem(key); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("GetItem(%q) err = %v, want ErrInvalidKey", key, err)
		}
	}
}

func TestQuota(t *testing.T) {
	d := New(t.TempDir())
	d.Quota = 4
	if err := d.SetItem("k", "12345"); !errors.Is(err, store.ErrQuotaExceeded) {
		t.Fatalf("err = %v, want ErrQuotaExceeded", err)
	}
	if err := d.SetItem("k", "1234"); err != nil {
		t.Errorf("within quota: %v", err)
	}
}

func TestWorksAsStoreMedium(t *testing.T) {
	d := New(t.TempDir())
	s := store.New(d, "wedding-checked", func() map[string]bool { return map[string]bool{} })
	s.Save(map[string]bool{"ktb-0": true})

	got := store.New(d, "wedding-checked", func() map[string]bool { return map[string]bool{} }).Load()
	if !got["ktb-0"] {
		t.Errorf("Load() = %v", got)
	}
}

func TestUnwritableDirIsReported(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	d := New(filepath.Join(blocker, "sub"))
	if err := d.SetItem("k", "v"); err == nil {
		t.Error("expected error writing under a regular file")
	}
}
