package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type danceStyle string

var (
	styleBreaking = New(danceStyle("BREAKING"))
	stylePopping  = New(danceStyle("POPPING"))
	styleLocking  = New(danceStyle("LOCKING"))
)

func TestToEnum(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    danceStyle
		wantErr bool
	}{
		{name: "first value", input: "BREAKING", want: styleBreaking},
		{name: "last value", input: "LOCKING", want: styleLocking},
		{name: "case sensitive", input: "popping", wantErr: true},
		{name: "unknown value", input: "WAACKING", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToEnum[danceStyle](tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestToEnum_NotDeclared(t *testing.T) {
	type undeclared string

	_, err := ToEnum[undeclared]("BREAKING")
	require.Error(t, err)
}

func TestNames(t *testing.T) {
	require.Equal(t, "BREAKING|POPPING|LOCKING", Names[danceStyle]())
	require.Equal(t, stylePopping, danceStyle("POPPING"))
}
