package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/predict-dashboard-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSet(t *testing.T) {
	tests := []struct {
		pair    string
		key     string
		want    any
		wantErr bool
	}{
		{pair: "month=4", key: "month", want: 4},
		{pair: "population_factor=2.5", key: "population_factor", want: 2.5},
		{pair: "district=Mumbai", key: "district", want: "Mumbai"},
		{pair: "district=Navi Mumbai", key: "district", want: "Navi Mumbai"},
		{pair: " severity_level =High", key: "severity_level", want: "High"},
		{pair: "issue_type=a=b", key: "issue_type", want: "a=b"},
		{pair: "district=[Pune", key: "district", want: "[Pune"},
		{pair: "district=[Pune]", key: "district", want: "[Pune]"},
		{pair: "district=", key: "district", want: nil},
		{pair: "month", wantErr: true},
		{pair: "=4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.pair, func(t *testing.T) {
			key, v, err := parseSet(tt.pair)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestParseFormDocument(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"yaml", "district: Mumbai\nmonth: 4\nresolution_rate: 0.3\n"},
		{"json", `{"district": "Mumbai", "month": 4, "resolution_rate": 0.3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form, err := parseFormDocument([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, domain.Form{"district": "Mumbai", "month": 4, "resolution_rate": 0.3}, form)
		})
	}
}

func TestParseFormDocument_Empty(t *testing.T) {
	form, err := parseFormDocument(nil)
	require.NoError(t, err)
	assert.Empty(t, form)
}

func TestParseFormDocument_NotAMapping(t *testing.T) {
	_, err := parseFormDocument([]byte("- district\n- month\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mapping")
}

func TestBuildForm_Layering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crisis.yaml")
	require.NoError(t, os.WriteFile(path, []byte("district: Pune\nmonth: 9\n"), 0o600))

	form, err := buildForm(domain.KindCrisis, true, path, []string{"month=7"})
	require.NoError(t, err)

	assert.Equal(t, "Pune", form["district"])
	assert.Equal(t, 7, form["month"])
	assert.Equal(t, 150, form["demand_requests"])

	_, err = domain.BuildRequest(domain.KindCrisis, form)
	require.NoError(t, err)
}

func TestBuildForm_SampleIsNotShared(t *testing.T) {
	form, err := buildForm(domain.KindCrisis, true, "", []string{"district=Pune"})
	require.NoError(t, err)
	require.Equal(t, "Pune", form["district"])

	assert.Equal(t, "Mumbai", sampleForms[domain.KindCrisis]["district"])
}

func TestBuildForm_MissingFile(t *testing.T) {
	_, err := buildForm(domain.KindDemand, false, filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read form file")
}

func TestSampleForms_AreValid(t *testing.T) {
	for _, kind := range domain.Kinds {
		t.Run(string(kind), func(t *testing.T) {
			_, err := domain.BuildRequest(kind, sampleForm(kind))
			require.NoError(t, err)
		})
	}
}
