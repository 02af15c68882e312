package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArielEspinoza07/console-forge/pkg/value"
)

func TestBuilder_Build(t *testing.T) {
	cmd, err := NewBuilder("deploy").
		Description("Deploy the app").
		Args(Must(RequiredArg("target", "")), Must(ArrayArg("services", "", false, value.Null()))).
		Opts(Must(Flag("dry-run", "n", "")), Must(ValueOpt("env", "e", "", value.String("staging")))).
		Handler(noop).
		Help("Deploys things").
		Hidden(true).
		Extra("group", "ops").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "deploy", cmd.Name())
	assert.Equal(t, "Deploy the app", cmd.Description())
	assert.Equal(t, "Deploys things", cmd.Help())
	assert.True(t, cmd.Hidden())
	assert.Len(t, cmd.Args(), 2)
	assert.Len(t, cmd.Opts(), 2)
	assert.Equal(t, "ops", cmd.Extra()["group"])
}

func TestBuilder_EmptyName(t *testing.T) {
	_, err := NewBuilder("").Build()
	assert.ErrorIs(t, err, ErrInvalidCommandName)
}

func TestBuilder_ValidatesOnBuild(t *testing.T) {
	b := NewBuilder("c").Opt(Must(Flag("a", "x", ""))).Opt(Must(Flag("b", "X", "")))
	_, err := b.Build()
	assert.ErrorIs(t, err, ErrDuplicateShortcut)
}

func TestMust_Panics(t *testing.T) {
	assert.Panics(t, func() { Must(RequiredArg("", "")) })
	assert.NotPanics(t, func() { Must(RequiredArg("ok", "")) })
}
