package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/pot-code/regform/internal/domain"
	"github.com/pot-code/regform/internal/registration"
)

// CheckOption options for Check
type CheckOption struct {
	File    string // snapshot document, "-" reads stdin
	NoColor bool
}

type palette struct {
	pass    *color.Color
	fail    *color.Color
	field   *color.Color
	heading *color.Color
}

func newPalette(noColor bool) *palette {
	p := &palette{
		pass:    color.New(color.FgHiGreen),
		fail:    color.New(color.FgHiRed),
		field:   color.New(color.Bold),
		heading: color.New(color.Bold, color.FgHiWhite),
	}
	if noColor {
		for _, c := range []*color.Color{p.pass, p.fail, p.field, p.heading} {
			c.DisableColor()
		}
	}
	return p
}

// Check validate the snapshot in option.File and print a report to out.
// The returned bool is the overall verdict.
func Check(option *CheckOption, stdin io.Reader, out io.Writer) (bool, error) {
	in := stdin
	if option.File != "-" {
		fd, err := os.Open(option.File)
		if err != nil {
			return false, err
		}
		defer fd.Close()
		in = fd
	}

	snapshot, err := registration.DecodeSnapshot(in)
	if err != nil {
		return false, err
	}
	result := registration.ValidateForm(snapshot)
	printReport(newPalette(option.NoColor), out, snapshot, result)
	return result.Valid, nil
}

func printReport(p *palette, out io.Writer, snapshot *domain.Snapshot, result *domain.FormResult) {
	for _, r := range result.Fields {
		mark := p.pass.Sprint("✓")
		msg := "ok"
		if !r.Valid {
			mark = p.fail.Sprint("✗")
			msg = r.Message
		}
		fmt.Fprintf(out, "%s %-16s %s\n", mark, p.field.Sprint(r.Field), msg)
	}
	fmt.Fprintln(out)

	if !result.Valid {
		fmt.Fprintln(out, p.fail.Sprintf("Form validation failed: %d of %d fields invalid",
			len(result.FieldErrors()), len(result.Fields)))
		return
	}

	summary := registration.Summarize(snapshot)
	phone := summary.Phone
	if phone != registration.NotProvided {
		phone = registration.FormatPhoneNumber(phone)
	}
	fmt.Fprintln(out, p.heading.Sprint("Form validation successful"))
	fmt.Fprintf(out, "  Full name: %s\n", summary.FullName)
	fmt.Fprintf(out, "  Email:     %s\n", summary.Email)
	fmt.Fprintf(out, "  Phone:     %s\n", phone)
	fmt.Fprintf(out, "  Age:       %s\n", summary.Age)
}
