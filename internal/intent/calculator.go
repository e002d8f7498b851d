// internal/intent/calculator.go
package intent

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	OpAdd      = "add"
	OpSubtract = "subtract"
	OpMultiply = "multiply"
	OpDivide   = "divide"
	OpPower    = "power"
	OpSqrt     = "sqrt"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error kinds reported by the calculator endpoint.
const (
	ErrorKindCalculation = "calculation_error"
	ErrorKindAPI         = "api_error"
)

const maxOperands = 10

var opSymbols = map[string]string{
	OpAdd:      "+",
	OpSubtract: "-",
	OpMultiply: "×",
	OpDivide:   "÷",
	OpPower:    "^",
}

// Evaluation is the outcome of one calculator call. ErrorKind is empty on success.
type Evaluation struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	ErrorKind string `json:"error_kind,omitempty"`
}

// Failed reports whether the evaluation produced an error.
func (e Evaluation) Failed() bool { return e.Status == StatusError }

func calcError(format string, args ...any) Evaluation {
	return Evaluation{
		Status:    StatusError,
		Message:   "Error: " + fmt.Sprintf(format, args...),
		ErrorKind: ErrorKindCalculation,
	}
}

func apiError(reason string) Evaluation {
	return Evaluation{
		Status:    StatusError,
		Message:   "Error: Calculator API failed - " + reason,
		ErrorKind: ErrorKindAPI,
	}
}

// Evaluate validates operands for operation, computes the result and renders
// it as "<expression> = <result>". It never panics; every failure is an
// Evaluation with StatusError.
func Evaluate(operation string, numbers []string) Evaluation {
	if len(numbers) == 0 {
		return calcError("No numbers provided for calculation")
	}
	if operation != OpSqrt && len(numbers) < 2 {
		return calcError("Need at least two numbers for calculation")
	}
	if len(numbers) > maxOperands {
		return calcError("Too many numbers provided (maximum %d)", maxOperands)
	}

	operands := make([]float64, 0, len(numbers))
	for _, tok := range numbers {
		f, ok := parseOperand(tok)
		if !ok {
			return calcError("'%s' is not a valid number", tok)
		}
		operands = append(operands, f)
	}

	var result float64
	switch operation {
	case OpAdd:
		for _, n := range operands {
			result += n
		}
	case OpSubtract:
		result = operands[0]
		for _, n := range operands[1:] {
			result -= n
		}
	case OpMultiply:
		result = 1
		for _, n := range operands {
			result *= n
		}
	case OpDivide:
		for _, n := range operands[1:] {
			if n == 0 {
				return calcError("Cannot divide by zero")
			}
		}
		result = operands[0]
		for _, n := range operands[1:] {
			result /= n
		}
	case OpPower:
		if len(operands) != 2 {
			return calcError("Power operation requires exactly two numbers")
		}
		result = math.Pow(operands[0], operands[1])
	case OpSqrt:
		if len(operands) != 1 {
			return calcError("Square root operation requires exactly one number")
		}
		if operands[0] < 0 {
			return calcError("Cannot calculate square root of negative number")
		}
		result = math.Pow(operands[0], 0.5)
	default:
		return calcError("Unknown operation '%s'. Supported operations: add, subtract, multiply, divide, power, sqrt", operation)
	}

	switch {
	case math.IsInf(result, 0):
		return apiError("calculation result is too large")
	case math.IsNaN(result):
		return apiError("calculation result is not a number")
	}

	return Evaluation{
		Status:  StatusSuccess,
		Message: expression(operation, operands) + " = " + formatResult(result),
	}
}

// parseOperand accepts the usual decimal forms, surrounding whitespace
// included. Out-of-range literals parse to ±Inf.
func parseOperand(tok string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

func expression(operation string, operands []float64) string {
	if operation == OpSqrt {
		return "√(" + formatOperand(operands[0]) + ")"
	}
	parts := make([]string, len(operands))
	for i, n := range operands {
		parts[i] = formatOperand(n)
	}
	return strings.Join(parts, " "+opSymbols[operation]+" ")
}

// formatResult drops the fraction of integral values and otherwise rounds to
// six decimal places.
func formatResult(r float64) string {
	if r == math.Trunc(r) {
		if r == 0 {
			return "0"
		}
		return strconv.FormatFloat(r, 'f', 0, 64)
	}
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(r, 'f', 6, 64), 64)
	return formatOperand(rounded)
}

// formatOperand renders the shortest round-trip form. Integral values keep a
// trailing ".0". Exponent form is used below 1e-4 and from 1e16 up.
func formatOperand(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	if f != 0 {
		sci := strconv.FormatFloat(f, 'e', -1, 64)
		if exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:]); exp < -4 || exp >= 16 {
			return sci
		}
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
