package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/crowdchain/crowdchain-api/internal/service/auth"
)

func TestRunHashesStdin(t *testing.T) {
	var out, errOut bytes.Buffer
	in := strings.NewReader("Sup3r$ecret\r\n\nAn0ther!pass\n")

	require.NoError(t, run(nil, bcrypt.MinCost, in, &out, &errOut))
	assert.Empty(t, errOut.String())

	hashes := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, hashes, 2)
	verifier := auth.NewBcryptVerifier()
	assert.NoError(t, verifier.Compare(hashes[0], "Sup3r$ecret"))
	assert.NoError(t, verifier.Compare(hashes[1], "An0ther!pass"))
}

func TestRunReportsPolicyFailures(t *testing.T) {
	var out, errOut bytes.Buffer

	err := run([]string{"weak", "Sup3r$ecret"}, bcrypt.MinCost, strings.NewReader(""), &out, &errOut)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Contains(t, errOut.String(), "password 1: password must be at least 8 characters long")
	assert.NotContains(t, errOut.String(), "weak")
	assert.Equal(t, 1, strings.Count(out.String(), "\n"))
}
