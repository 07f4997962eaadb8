package vcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommit_args(t *testing.T) {
	c := Commit{Message: "release v3.1.0"}
	assert.Equal(t, []string{"commit", "-m", "release v3.1.0"}, c.args())
	c.All = true
	assert.Equal(t, []string{"commit", "-a", "-m", "release v3.1.0"}, c.args())
}

func TestAdd_args(t *testing.T) {
	var a Add
	assert.Equal(t, []string{"add", "--", "."}, a.args())
	a.Paths = []string{"pyproject.toml", "src"}
	assert.Equal(t, []string{"add", "--", "pyproject.toml", "src"}, a.args())
}

func TestPush_args(t *testing.T) {
	var p Push
	assert.Equal(t, []string{"push"}, p.args())
	p = Push{Remote: "origin", Branch: "develop", SetUpstream: true}
	assert.Equal(t, []string{"push", "-u", "origin", "develop"}, p.args())
}

func TestPRCreate_args(t *testing.T) {
	pr := PRCreate{Base: "master", Head: "develop", Fill: true}
	assert.Equal(t,
		[]string{"pr", "create", "--base", "master", "--head", "develop", "--fill"},
		pr.args(),
	)
}

func TestAutoMerge_args(t *testing.T) {
	m := AutoMerge{Branch: "develop"}
	args, err := m.args()
	require.NoError(t, err)
	assert.Equal(t, []string{"pr", "merge", "--auto", "--merge", "develop"}, args)

	m.Method = "squash"
	args, err = m.args()
	require.NoError(t, err)
	assert.Equal(t, []string{"pr", "merge", "--auto", "--squash", "develop"}, args)

	m.Method = "fast-forward"
	_, err = m.args()
	assert.Error(t, err)
}

func TestRelease_args(t *testing.T) {
	r := Release{Tag: "v3.1.0", Title: "3.1.0", GenerateNotes: true}
	assert.Equal(t,
		[]string{"release", "create", "v3.1.0", "--title", "3.1.0", "--generate-notes"},
		r.args(),
	)
}
