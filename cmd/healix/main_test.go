package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healix-app/healix-be/internal/assistant"
	"github.com/healix-app/healix-be/internal/diagnosis"
)

func init() {
	color.NoColor = true
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		analyzeFormat = "text"
		catalogPath = ""
		conditionsCategory = ""
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAnalyze(t *testing.T) {
	a := analyze(diagnosis.DefaultCatalog(), "I have a runny nose, sneezing, and congestion")

	assert.Equal(t, assistant.KindDetailed, a.Kind)
	require.Len(t, a.Matches, 3)
	assert.Equal(t, "Allergic Rhinitis (Hay Fever)", a.Matches[0].Condition.Name)
	assert.Equal(t, 79, a.Matches[0].Confidence)
	assert.Contains(t, a.Symptoms, "runny nose")
	require.NotNil(t, a.Insight)
}

func TestAnalyzeNoSymptoms(t *testing.T) {
	a := analyze(diagnosis.DefaultCatalog(), "hi")

	assert.Equal(t, assistant.KindGeneric, a.Kind)
	assert.NotNil(t, a.Matches, "json output should carry an empty list")
	assert.Empty(t, a.Matches)
	assert.Nil(t, a.Insight)
}

func TestAnalyzeCommandJSON(t *testing.T) {
	out, err := execute(t, "analyze", "--format", "json", "severe", "chest", "pain")
	require.NoError(t, err)

	var a analysis
	require.NoError(t, json.Unmarshal([]byte(out), &a))
	assert.Equal(t, diagnosis.DefaultCatalog().Version(), a.CatalogVersion)
	assert.NotEmpty(t, a.Reply)
}

func TestAnalyzeCommandText(t *testing.T) {
	out, err := execute(t, "analyze", "I have a runny nose, sneezing, and congestion")
	require.NoError(t, err)

	assert.Contains(t, out, "SYMPTOMS")
	assert.Contains(t, out, "1. Allergic Rhinitis (Hay Fever)")
	assert.Contains(t, out, "79%")
	assert.Contains(t, out, "REPLY (detailed)")
}

func TestAnalyzeCommandErrors(t *testing.T) {
	_, err := execute(t, "analyze", "--format", "xml", "cough")
	assert.ErrorContains(t, err, "unknown format")

	_, err = execute(t, "analyze", "--catalog", "/does/not/exist.yaml", "cough")
	assert.Error(t, err)

	_, err = execute(t, "analyze")
	assert.Error(t, err)
}

func TestPrintConditions(t *testing.T) {
	var out bytes.Buffer
	printConditions(&out, diagnosis.DefaultCatalog(), diagnosis.CategoryRespiratory)

	text := out.String()
	assert.Contains(t, text, "common-cold")
	assert.NotContains(t, text, "appendicitis")
	assert.True(t, strings.HasPrefix(text, "catalog "+diagnosis.DefaultCatalog().Version()))
}

func TestConditionsCommand(t *testing.T) {
	out, err := execute(t, "conditions")
	require.NoError(t, err)
	assert.Contains(t, out, "36 conditions")

	_, err = execute(t, "conditions", "--category", "astrology")
	assert.Error(t, err)
}
