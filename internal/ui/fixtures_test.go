package ui

import (
	"encoding/json"

	"github.com/oakwood-commons/cfged/internal/backend"
	"github.com/oakwood-commons/cfged/pkg/settings"
)

// fakeBackend records writes and can be told to fail them.
type fakeBackend struct {
	sets    []setCall
	setErr  error
	loadVal interface{}
}

type setCall struct {
	locator string
	keyPath string
	value   string
}

func (f *fakeBackend) Load(string) (interface{}, error) {
	return f.loadVal, nil
}

func (f *fakeBackend) Get(string, string) (interface{}, bool, error) {
	return nil, false, nil
}

func (f *fakeBackend) Set(locator, keyPath, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.sets = append(f.sets, setCall{locator: locator, keyPath: keyPath, value: value})
	return nil
}

func (f *fakeBackend) Keys(string, string) ([]string, error) {
	return nil, nil
}

func (f *fakeBackend) Info(string) (backend.Info, error) {
	return backend.Info{Path: "/tmp/app.json", Format: "json"}, nil
}

func (f *fakeBackend) Validate(string) ([]string, error) {
	return nil, nil
}

func (f *fakeBackend) SearchPaths() []string {
	return nil
}

// sampleValue is the document most tests edit. With default expansion the
// projection is:
//
//	0 root        {4 keys}
//	1   database  {2 keys}
//	2     host    "localhost"
//	3     port    5432
//	4   debug     true
//	5   items     [3 items]
//	6     [0]     "a"
//	7     [1]     "b"
//	8     [2]     "c"
//	9   name      "demo"
func sampleValue() map[string]interface{} {
	return map[string]interface{}{
		"database": map[string]interface{}{
			"host": "localhost",
			"port": json.Number("5432"),
		},
		"debug": true,
		"items": []interface{}{"a", "b", "c"},
		"name":  "demo",
	}
}

func newTestSession(mode settings.InputMode) (*Session, *fakeBackend) {
	b := &fakeBackend{loadVal: sampleValue()}
	s := NewSession(sampleValue(), "app.json", "/tmp/app.json", mode, b)
	return s, b
}

// rowIndexByKey finds the first visible row with the given key.
func rowIndexByKey(s *Session, key string) int {
	for i, row := range s.Rows() {
		if row.Key == key {
			return i
		}
	}
	return -1
}
