package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "message only",
			err:  New(ErrCodeInvalidScript, "step %d: unknown op %q", 3, "spin"),
			want: `INVALID_SCRIPT: step 3: unknown op "spin"`,
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeFileNotFound, fs.ErrNotExist, "read script %s", "loop.toml"),
			want: "FILE_NOT_FOUND: read script loop.toml: file does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(ErrCodeFileNotFound, fs.ErrNotExist, "read script")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is(err, fs.ErrNotExist) = false, want true")
	}
	if got := errors.Unwrap(err); got != fs.ErrNotExist {
		t.Errorf("Unwrap() = %v, want %v", got, fs.ErrNotExist)
	}
}

func TestCodeLookup(t *testing.T) {
	direction := New(ErrCodeInvalidDirection, `unknown direction "up"`)
	script := Wrap(ErrCodeInvalidScript, direction, "step 2")
	wrapped := fmt.Errorf("build: %w", script)

	tests := []struct {
		name     string
		err      error
		wantCode Code
		wantKind Kind
	}{
		{"coded", direction, ErrCodeInvalidDirection, KindInvalid},
		{"outermost code wins", script, ErrCodeInvalidScript, KindInvalid},
		{"behind fmt wrapping", wrapped, ErrCodeInvalidScript, KindInvalid},
		{"usage", New(ErrCodeInvalidFormat, "gif"), ErrCodeInvalidFormat, KindUsage},
		{"not found", New(ErrCodeNotFound, "no belt"), ErrCodeNotFound, KindNotFound},
		{"plain", errors.New("disk on fire"), "", KindInternal},
		{"nil", nil, "", KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.wantCode {
				t.Errorf("GetCode() = %q, want %q", got, tt.wantCode)
			}
			if got := KindOf(tt.err); got != tt.wantKind {
				t.Errorf("KindOf() = %v, want %v", got, tt.wantKind)
			}
			if tt.wantCode != "" && !Is(tt.err, tt.wantCode) {
				t.Errorf("Is(err, %q) = false, want true", tt.wantCode)
			}
		})
	}

	if Is(script, ErrCodeInvalidDirection) {
		t.Error("Is() matched an inner code, want outermost only")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{New(ErrCodeInvalidPath, "empty"), 2},
		{New(ErrCodeInvalidConfig, "tile_size"), 3},
		{Wrap(ErrCodeFileNotFound, fs.ErrNotExist, "read"), 4},
		{New(ErrCodeInternal, "boom"), 1},
		{context.DeadlineExceeded, 1},
	}

	for _, tt := range tests {
		if got := ExitCode(tt.err); got != tt.want {
			t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", New(ErrCodeInvalidInput, "x and y must be integers"), "x and y must be integers"},
		{"plain", errors.New("plain error"), "plain error"},
		{
			"nested codes are dropped",
			Wrap(ErrCodeInvalidScript, New(ErrCodeInvalidDirection, `unknown direction "up"`), "step 2"),
			`step 2: unknown direction "up"`,
		},
		{
			"plain cause kept",
			Wrap(ErrCodeFileNotFound, fs.ErrNotExist, "read script"),
			"read script: file does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
