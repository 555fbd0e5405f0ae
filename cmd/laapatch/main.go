// Package main provides the LAAPatch CLI tool.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ZacharyZcR/LAAPatch/internal/cli"
	"github.com/ZacharyZcR/LAAPatch/internal/pe"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "laapatch <file.exe>",
		Short: "查看并切换EXE文件的 Large Address Aware 标志",
		Long: `laapatch 读取PE文件COFF头中的 Characteristics 字段，显示
IMAGE_FILE_LARGE_ADDRESS_AWARE (0x20) 的当前状态，并在确认后翻转该位。
文件的其余字节保持不变。

示例:
  laapatch game.exe`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(args, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	// Flag errors never reach RunE; report them the same way as bad arguments.
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		err = fmt.Errorf("%w: %w\n用法: laapatch <file.exe>", pe.ErrInvalidArgument, err)
		reporter := cli.NewReporter(c.OutOrStdout(), c.ErrOrStderr())
		reporter.PrintError(err)
		cli.NewPrompter(c.InOrStdin(), reporter).WaitForAck()
		return err
	})

	return cmd
}

func runPatch(args []string, in io.Reader, out, errOut io.Writer) error {
	reporter := cli.NewReporter(out, errOut)
	prompter := cli.NewPrompter(in, reporter)

	err := checkArgs(args)
	if err == nil {
		err = cli.Run(args[0], prompter, reporter)
	}
	if err != nil {
		reporter.PrintError(err)
	}

	prompter.WaitForAck()
	return err
}

func checkArgs(args []string) error {
	switch len(args) {
	case 0:
		return fmt.Errorf("%w: 未提供参数\n用法: laapatch <file.exe>", pe.ErrInvalidArgument)
	case 1:
		return nil
	default:
		return fmt.Errorf("%w: 只接受1个参数，实际 %d 个\n用法: laapatch <file.exe>", pe.ErrInvalidArgument, len(args))
	}
}
