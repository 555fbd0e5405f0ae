package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/ZacharyZcR/LAAPatch/internal/pe"
)

// Run inspects path, asks the operator and applies or discards the toggle.
// The file is closed before Run returns on every path.
func Run(path string, prompter *Prompter, reporter *Reporter) error {
	patcher, err := pe.NewPatcher(path)
	if err != nil {
		return err
	}
	defer func() { _ = patcher.Close() }()

	status, err := patcher.Inspect()
	if err != nil {
		return err
	}
	reporter.PrintStatus(status)

	decision, err := prompter.Decide()
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("读取输入失败: %w", err)
	}

	result, err := patcher.Resolve(decision)
	if err != nil {
		return err
	}

	reporter.PrintResult(decision, result)
	return nil
}
