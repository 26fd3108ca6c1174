package payment

import "strings"

// Method values match order.PaymentMethod.
const (
	MethodCOD          = "cod"
	MethodUPI          = "upi"
	MethodBankTransfer = "bank_transfer"
)

var InstructionMap = map[string][]string{
	MethodCOD: {
		"Keep {{amount}} ready in cash when your order arrives",
		"Pay the delivery executive directly and collect your receipt",
	},

	MethodUPI: {
		"Pay {{amount}} by UPI when your order is delivered",
		"Scan the shop QR code shown by the delivery executive",
		"Mention {{order_number}} in the payment note",
	},

	MethodBankTransfer: {
		"Transfer {{amount}} in advance to confirm your order",
		"Use {{order_number}} as the payment reference",
		"Share the transfer receipt on {{shop_phone}} so we can confirm dispatch",
	},
}

func GetInstructions(method string) []string {
	if steps, ok := InstructionMap[method]; ok {
		return steps
	}

	return []string{
		"Contact us on {{shop_phone}} to arrange payment of {{amount}}",
	}
}

type InstructionVars map[string]string

// InjectVariables fills {{key}} placeholders. Unknown placeholders are left as is.
func InjectVariables(
	steps []string,
	vars InstructionVars,
) []string {
	result := make([]string, 0, len(steps))

	for _, step := range steps {
		updated := step
		for key, value := range vars {
			updated = strings.ReplaceAll(
				updated,
				"{{"+key+"}}",
				value,
			)
		}
		result = append(result, updated)
	}

	return result
}

// Render returns the filled-in steps for method.
func Render(method string, vars InstructionVars) []string {
	return InjectVariables(GetInstructions(method), vars)
}
