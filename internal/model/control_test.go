package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestControlTestAssignedTo(t *testing.T) {
	test := &ControlTest{AssignedClasses: []string{"8А", "9"}}

	assert.True(t, test.AssignedTo("8", "А"))
	assert.False(t, test.AssignedTo("8", "Б"))
	assert.True(t, test.AssignedTo("9", "В"), "whole grade")
	assert.False(t, test.AssignedTo("", ""))
	assert.False(t, (&ControlTest{}).AssignedTo("8", "А"))
}
