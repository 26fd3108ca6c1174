package payment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetInstructions(t *testing.T) {
	t.Run("ReturnsTemplateForKnownMethod", func(t *testing.T) {
		for _, method := range []string{MethodCOD, MethodUPI, MethodBankTransfer} {
			instructions := GetInstructions(method)
			assert.NotEmpty(t, instructions, method)

			found := false
			for _, instr := range instructions {
				if strings.Contains(instr, "{{amount}}") {
					found = true
					break
				}
			}
			assert.True(t, found, "%s instructions should mention the amount", method)
		}
	})

	t.Run("FallsBackForUnknown", func(t *testing.T) {
		instructions := GetInstructions("cheque")
		assert.Len(t, instructions, 1)
		assert.Contains(t, instructions[0], "{{shop_phone}}")
	})
}

func TestInjectVariables(t *testing.T) {
	t.Run("ReplacesPlaceholders", func(t *testing.T) {
		template := []string{"Transfer {{amount}} using {{order_number}} as reference."}
		vars := InstructionVars{
			"amount":       "₹450",
			"order_number": "ORD-20260310-043000-000-ABCD",
		}

		expected := []string{"Transfer ₹450 using ORD-20260310-043000-000-ABCD as reference."}
		assert.Equal(t, expected, InjectVariables(template, vars))
	})

	t.Run("LeavesMissingVariables", func(t *testing.T) {
		result := InjectVariables([]string{"Pay {{amount}}"}, InstructionVars{})
		assert.Equal(t, "Pay {{amount}}", result[0])
	})
}

func TestRender(t *testing.T) {
	steps := Render(MethodBankTransfer, InstructionVars{
		"amount":       "₹450",
		"order_number": "ORD-1",
		"shop_phone":   "+91 90000 00000",
	})

	assert.Len(t, steps, 3)
	for _, s := range steps {
		assert.NotContains(t, s, "{{")
	}
	assert.Contains(t, steps[2], "+91 90000 00000")
}
