package types

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultPayload(t *testing.T) {
	r := &Result{
		Title:   "Internet",
		Summary: Summary{Description: StringPtr("Réseau"), URL: StringPtr("https://fr.wikipedia.org/wiki/Internet")},
	}

	b, err := json.Marshal(r.Payload())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"title": "Internet",
		"description": "Réseau",
		"extract": null,
		"thumbnail": null,
		"url": "https://fr.wikipedia.org/wiki/Internet",
		"firstParagraphs": []
	}`, string(b))
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))
	p := StringPtr("x")
	require.NotNil(t, p)
	assert.Equal(t, "x", *p)
}

func TestOutcome(t *testing.T) {
	ok := Succeeded(&Result{Title: "Paris"})
	assert.Equal(t, "ok", ok.Label())
	assert.Nil(t, ok.Err)

	failed := Failed(ReasonNoMatch, "xyzzy", "")
	assert.Equal(t, "no_match", failed.Label())
	assert.Nil(t, failed.Result)
	assert.Equal(t, `no_match (query="xyzzy")`, failed.Err.Error())

	internal := Failed(ReasonInternalFailure, "q", "boom")
	assert.Equal(t, `internal_failure (query="q"): boom`, internal.Err.Error())
}

func TestFetched(t *testing.T) {
	s := Success([]string{"a"})
	assert.False(t, s.Degraded)
	assert.NoError(t, s.Cause)

	cause := errors.New("timeout")
	d := Degrade([]string{}, cause)
	assert.True(t, d.Degraded)
	assert.Empty(t, d.Value)
	assert.ErrorIs(t, d.Cause, cause)
}
