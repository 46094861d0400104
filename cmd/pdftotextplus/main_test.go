/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ad-freiburg/pdftotextplus-go/model"
)

func TestParseRoleFilterEmptyMeansEveryRole(t *testing.T) {
	filter, requested := parseRoleFilter("")
	assert.Nil(t, filter)
	assert.False(t, requested)
}

func TestParseRoleFilterMatchesNamedRoles(t *testing.T) {
	filter, requested := parseRoleFilter("title, paragraph")
	assert.True(t, requested)
	assert.True(t, filter[model.RoleTitle])
	assert.True(t, filter[model.RoleParagraph])
	assert.False(t, filter[model.RoleHeading])
}

func TestSplitCSVTrimsAndSplits(t *testing.T) {
	assert.Equal(t, []string{"words", "lines"}, splitCSV(" words, lines "))
	assert.Nil(t, splitCSV("  "))
}

func TestRunReportsArgumentErrorExitCode(t *testing.T) {
	var stderr strings.Builder
	code := run([]string{}, &stderr)
	assert.Equal(t, 2, code)
}

func TestRunReportsInputIOErrorExitCode(t *testing.T) {
	var stderr strings.Builder
	code := run([]string{"/nonexistent/does-not-exist.pdf"}, &stderr)
	assert.Equal(t, 1, code)
}
