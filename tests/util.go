package testutil

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// Logger funnels app logs into the test output.
type Logger struct {
	T *testing.T
}

func NewLogger(t *testing.T) *Logger { return &Logger{T: t} }

func (l Logger) log(level, msg string, args []interface{}) {
	l.T.Helper()
	l.T.Logf("[%s] %s %v", level, msg, args)
}

func (l Logger) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg, args) }
func (l Logger) Info(msg string, args ...interface{})  { l.log("INFO", msg, args) }
func (l Logger) Warn(msg string, args ...interface{})  { l.log("WARN", msg, args) }
func (l Logger) Error(msg string, args ...interface{}) { l.log("ERROR", msg, args) }
func (l Logger) Fatal(msg string, args ...interface{}) { l.log("FATAL", msg, args) }

func MarshalObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("MarshalObj() failed: %v", err)
	}
	return data
}

// CheckJSONEqual compares two JSON payloads structurally and prints a
// unified diff on mismatch.
func CheckJSONEqual(t *testing.T, want, got []byte) {
	t.Helper()
	var j1, j2 interface{}
	if err := json.Unmarshal(want, &j1); err != nil {
		t.Fatalf("CheckJSONEqual() invalid want: %v", err)
	}
	if err := json.Unmarshal(got, &j2); err != nil {
		t.Fatalf("CheckJSONEqual() invalid got: %v", err)
	}
	if reflect.DeepEqual(j1, j2) {
		return
	}

	wantPretty, _ := json.MarshalIndent(j1, "", "  ")
	gotPretty, _ := json.MarshalIndent(j2, "", "  ")
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(wantPretty)),
		B:        difflib.SplitLines(string(gotPretty)),
		FromFile: "want",
		ToFile:   "got",
		Context:  3,
	})
	t.Errorf("JSON mismatch:\n%s", diff)
}
