package xcsf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xcsf.ini")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
POP_SIZE = 100
MAX_TRIALS = 5000
COND_TYPE = ellipsoid
PRED_TYPE = rls-quadratic
BETA = 0.2
EPS_0 = 0.005
GA_SUBSUMPTION = true
NUM_SAM = 2
SEED = 42
`)

	p := DefaultParams()
	require.NoError(t, p.LoadConfig(path))

	require.Equal(t, 100, p.PopSize)
	require.Equal(t, 5000, p.MaxTrials)
	require.Equal(t, CondEllipsoid, p.CondType)
	require.Equal(t, PredRLSQuadratic, p.PredType)
	require.Equal(t, 0.2, p.Beta)
	require.Equal(t, 0.005, p.Eps0)
	require.True(t, p.GASubsumption)
	require.Equal(t, 2, p.NumSam)
	require.Equal(t, int64(42), p.Seed)
}

func TestLoadConfigNumericTypeCodes(t *testing.T) {
	path := writeConfig(t, "COND_TYPE = 4\nPRED_TYPE = 3\n")

	p := DefaultParams()
	require.NoError(t, p.LoadConfig(path))
	require.Equal(t, CondGP, p.CondType)
	require.Equal(t, PredRLSQuadratic, p.PredType)
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, "POP_SIZE = 100\nBOGUS_KEY = 1\n")

	p := DefaultParams()
	require.ErrorIs(t, p.LoadConfig(path), ErrConfig)
}

func TestLoadConfigRejectsMalformedValue(t *testing.T) {
	path := writeConfig(t, "BETA = fast\n")

	p := DefaultParams()
	require.ErrorIs(t, p.LoadConfig(path), ErrConfig)
}

func TestLoadConfigMissingFile(t *testing.T) {
	p := DefaultParams()
	require.ErrorIs(t, p.LoadConfig(filepath.Join(t.TempDir(), "absent.ini")), ErrConfig)
}

func TestValidate(t *testing.T) {
	p := DefaultParams()
	require.NoError(t, p.Validate())

	bad := p
	bad.PopSize = 0
	require.ErrorIs(t, bad.Validate(), ErrConfig)

	bad = p
	bad.ThetaMNA = p.PopSize + 1
	require.ErrorIs(t, bad.Validate(), ErrConfig)

	bad = p
	bad.Beta = 0.0
	require.ErrorIs(t, bad.Validate(), ErrConfig)

	bad = p
	bad.MaxCon = p.MinCon
	require.ErrorIs(t, bad.Validate(), ErrConfig)

	bad = p
	bad.X0 = 0.0
	require.ErrorIs(t, bad.Validate(), ErrConfig)
}

func TestNewRejectsInvalidParams(t *testing.T) {
	p := DefaultParams()
	p.PopSize = -1
	_, err := New(1, 1, p)
	require.ErrorIs(t, err, ErrConfig)
}
