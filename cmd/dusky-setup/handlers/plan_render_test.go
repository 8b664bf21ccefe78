package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPlan(t *testing.T) {
	t.Run("contains every row and the totals", func(t *testing.T) {
		rows := []planRow{
			{Name: "analyzer", Tier: "user", Status: statusDone},
			{Name: "packages", Tier: "elevated", Status: statusPending, Path: "/opt/setup.d/packages", Description: "Installs the base package set"},
			{Name: "fonts", Tier: "user", Status: statusMissing},
		}

		output := renderPlan("/home/u/dusky-setup.yaml", rows, false)

		assert.Contains(t, output, "dusky setup plan: /home/u/dusky-setup.yaml")
		assert.Contains(t, output, "analyzer")
		assert.Contains(t, output, "done")
		assert.Contains(t, output, "packages")
		assert.Contains(t, output, "(elevated)")
		assert.Contains(t, output, "Installs the base package set")
		assert.Contains(t, output, "fonts")
		assert.Contains(t, output, "missing")
		assert.Contains(t, output, "1 done, 1 pending, 1 missing")
	})

	t.Run("icons per status", func(t *testing.T) {
		rows := []planRow{
			{Name: "a", Status: statusDone},
			{Name: "b", Status: statusPending},
			{Name: "c", Status: statusMissing},
		}

		output := renderPlan("x.yaml", rows, false)

		assert.Contains(t, output, "[OK]")
		assert.Contains(t, output, "[  ]")
		assert.Contains(t, output, "[??]")
	})

	t.Run("description suppressed for done steps", func(t *testing.T) {
		rows := []planRow{
			{Name: "a", Status: statusDone, Description: "Already finished work"},
		}

		output := renderPlan("x.yaml", rows, false)
		assert.NotContains(t, output, "Already finished work")
	})
}
