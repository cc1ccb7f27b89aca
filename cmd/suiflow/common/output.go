package common

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/NilFoundation/suiflow/client"
	"github.com/NilFoundation/suiflow/services/cliservice"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Quiet prints only the essential value of each command.
var Quiet bool

type Builder struct {
	strings.Builder
}

func (b *Builder) WriteLine(parts ...string) {
	for _, part := range parts {
		b.WriteString(part)
	}
	b.WriteString("\n")
}

func GreenStr(format string, args ...any) string {
	return color.HiGreenString(format, args...)
}

func CyanStr(format string, args ...any) string {
	return color.HiCyanString(format, args...)
}

func YellowStr(format string, args ...any) string {
	return color.HiYellowString(format, args...)
}

func RedStr(format string, args ...any) string {
	return color.HiRedString(format, args...)
}

func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func PrintYAML(v any) error {
	return WriteYAML(os.Stdout, v)
}

// PrintOutcome reports a transaction workflow result.
func PrintOutcome(out *cliservice.Outcome) error {
	if Quiet {
		fmt.Println(out.Signed.Digest)
		return nil
	}

	var b Builder
	if out.Result == nil {
		b.WriteLine(YellowStr("Dry run, transaction not submitted"))
		fmt.Print(b.String())
		return PrintYAML(struct {
			Plan      any    `yaml:"plan"`
			Signature string `yaml:"signature"`
		}{out.Plan, out.Signed.Signature.Base64()})
	}

	b.WriteLine(GreenStr("Transaction executed"))
	b.WriteLine("  digest:  ", CyanStr("%s", out.Result.Digest))
	if !out.Result.EffectsDigest.IsEmpty() {
		b.WriteLine("  effects: ", out.Result.EffectsDigest.String())
	}
	for _, lap := range out.Laps {
		b.WriteLine(fmt.Sprintf("  %-8s %s", lap.Stage+":", lap.Duration))
	}
	fmt.Print(b.String())
	return nil
}

// DescribeError prefixes err with its class.
func DescribeError(err error) string {
	switch {
	case errors.Is(err, client.ErrExecutionRejected):
		return RedStr("rejected: ") + err.Error()
	case errors.Is(err, client.ErrTransport):
		return RedStr("transport error: ") + err.Error()
	default:
		return RedStr("error: ") + err.Error()
	}
}
