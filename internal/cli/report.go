// Package cli provides command-line interface utilities.
package cli

import (
	"fmt"
	"io"

	"github.com/ZacharyZcR/LAAPatch/internal/pe"
	"github.com/fatih/color"
)

// Reporter formats and prints patch state and results.
type Reporter struct {
	out    io.Writer
	errOut io.Writer
}

// NewReporter creates a reporter writing status to out and errors to errOut.
func NewReporter(out, errOut io.Writer) *Reporter {
	return &Reporter{out: out, errOut: errOut}
}

// PrintStatus outputs the current state of the file.
func (r *Reporter) PrintStatus(s *pe.Status) {
	yellow := color.New(color.FgYellow, color.Bold)
	_, _ = yellow.Fprintln(r.out, "\n【基本信息】")

	fmt.Fprintf(r.out, "  %-12s: %s\n", "文件路径", s.Path)
	fmt.Fprintf(r.out, "  %-12s: %s\n", "架构", s.Architecture)
	fmt.Fprintf(r.out, "  %-12s: 0x%04X (偏移 0x%X)\n", "COFF特征", s.Characteristics.Uint16(), s.Offset)

	if s.Checksum.Present() {
		warn := color.New(color.FgYellow)
		if s.Checksum.Valid {
			_, _ = warn.Fprintf(r.out, "  ⚠️  文件包含校验和 (0x%08X)，修改后校验和将不再匹配\n", s.Checksum.Stored)
		} else {
			_, _ = warn.Fprintf(r.out, "  ⚠️  文件校验和已不匹配 (存储: 0x%08X, 计算: 0x%08X)\n",
				s.Checksum.Stored, s.Checksum.Computed)
		}
	}

	fmt.Fprintln(r.out)
	cyan := color.New(color.FgCyan)
	_, _ = cyan.Fprintf(r.out, "Large Address Aware 当前%s\n", stateText(s.LargeAddressAware()))
}

// PrintPrompt asks the operator for a decision.
func (r *Reporter) PrintPrompt() {
	cyan := color.New(color.FgCyan)
	_, _ = cyan.Fprintln(r.out, "输入 [y/n] 以 [修改/退出]")
}

// PrintResult reports what Resolve did.
func (r *Reporter) PrintResult(d pe.Decision, s *pe.Status) {
	green := color.New(color.FgGreen, color.Bold)
	if d == pe.Apply {
		_, _ = green.Fprintf(r.out, "✓ Large Address Aware %s\n", stateText(s.LargeAddressAware()))
		return
	}
	_, _ = green.Fprintln(r.out, "EXE文件未被修改")
}

// PrintError prints err to the error stream.
func (r *Reporter) PrintError(err error) {
	red := color.New(color.FgRed, color.Bold)
	_, _ = red.Fprintf(r.errOut, "\n错误: %v\n\n", err)
}

// PrintAck tells the operator how to leave.
func (r *Reporter) PrintAck() {
	gray := color.New(color.FgHiBlack)
	_, _ = gray.Fprintln(r.out, "按回车键退出...")
}

func stateText(enabled bool) string {
	if enabled {
		return "已启用"
	}
	return "已禁用"
}
