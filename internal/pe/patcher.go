package pe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ExecutableExt is the only extension the patcher accepts.
const ExecutableExt = ".exe"

// State is a step of the patching state machine.
type State int

// Patcher states, in the order they are reached.
const (
	StateOpened State = iota
	StateLocated
	StateInspected
	StateApplied
	StateDiscarded
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOpened:
		return "opened"
	case StateLocated:
		return "located"
	case StateInspected:
		return "inspected"
	case StateApplied:
		return "applied"
	case StateDiscarded:
		return "discarded"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Decision is the operator's answer after inspection.
type Decision int

const (
	// Discard leaves the file untouched.
	Discard Decision = iota
	// Apply flips the large address aware bit and persists it.
	Apply
)

func (d Decision) String() string {
	if d == Apply {
		return "apply"
	}
	return "discard"
}

// ValidatePath checks that path names an existing .exe file. Nothing is opened.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: 未提供文件路径", ErrInvalidArgument)
	}

	stat, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: 文件不存在: %s", ErrInvalidArgument, path)
		}
		return fmt.Errorf("%w: 获取文件信息失败: %w", ErrInvalidArgument, err)
	}
	if stat.IsDir() {
		return fmt.Errorf("%w: 路径是目录: %s", ErrInvalidArgument, path)
	}

	if !strings.EqualFold(filepath.Ext(path), ExecutableExt) {
		return fmt.Errorf("%w: 不是EXE文件: %s", ErrInvalidArgument, path)
	}

	return nil
}

// Patcher toggles the large address aware bit of one file.
//
// It walks Opened → Located → Inspected → Applied|Discarded → Closed. Any
// I/O failure closes the file and leaves the Patcher in StateClosed.
type Patcher struct {
	filepath string
	file     *os.File
	state    State
	status   *Status
}

// NewPatcher validates filepath and opens it for reading and writing.
func NewPatcher(filepath string) (*Patcher, error) {
	if err := ValidatePath(filepath); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(filepath, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: 打开文件失败: %w", ErrIO, err)
	}

	return &Patcher{
		filepath: filepath,
		file:     file,
		state:    StateOpened,
	}, nil
}

// State returns the current state.
func (p *Patcher) State() State {
	return p.state
}

// Close releases the file. It is safe to call more than once.
func (p *Patcher) Close() error {
	p.state = StateClosed
	if p.file == nil {
		return nil
	}

	err := p.file.Close()
	p.file = nil
	if err != nil {
		return fmt.Errorf("%w: 关闭文件失败: %w", ErrIO, err)
	}
	return nil
}

// fail closes the file and returns err unchanged.
func (p *Patcher) fail(err error) error {
	_ = p.Close()
	return err
}

// Locate computes the absolute offset of the Characteristics field.
func (p *Patcher) Locate() (int64, error) {
	if p.state != StateOpened {
		return 0, fmt.Errorf("%w: 当前状态 %s 不能定位", ErrInvalidState, p.state)
	}

	offset, err := LocateCharacteristics(p.file)
	if err != nil {
		return 0, p.fail(err)
	}

	p.status = &Status{Path: p.filepath, Offset: offset}
	p.state = StateLocated
	return offset, nil
}

// Inspect reads the current Characteristics field, locating it first if needed.
func (p *Patcher) Inspect() (*Status, error) {
	if p.state == StateOpened {
		if _, err := p.Locate(); err != nil {
			return nil, err
		}
	}
	if p.state != StateLocated && p.state != StateInspected {
		return nil, fmt.Errorf("%w: 当前状态 %s 不能读取", ErrInvalidState, p.state)
	}

	status, err := readStatus(p.file, p.filepath, p.status.Offset)
	if err != nil {
		return nil, p.fail(err)
	}

	p.status = status
	p.state = StateInspected
	return p.snapshot(), nil
}

// Resolve applies or discards the toggle and closes the file.
//
// Apply writes the two toggled bytes in a single call at the same offset,
// flushes them to stable storage, reads them back and closes the file before
// returning. Discard closes the file without writing.
func (p *Patcher) Resolve(d Decision) (*Status, error) {
	if p.state != StateInspected {
		return nil, fmt.Errorf("%w: 当前状态 %s 不能提交", ErrInvalidState, p.state)
	}

	if d != Apply {
		p.state = StateDiscarded
		result := p.snapshot()
		if err := p.Close(); err != nil {
			return nil, err
		}
		return result, nil
	}

	next := p.status.Characteristics.Toggle(ImageFileLargeAddressAware)
	if err := p.write(next); err != nil {
		return nil, p.fail(err)
	}

	p.status.Characteristics = next
	p.state = StateApplied
	result := p.snapshot()
	if err := p.Close(); err != nil {
		return nil, err
	}
	return result, nil
}

func (p *Patcher) write(next Characteristics) error {
	offset := p.status.Offset

	n, err := p.file.WriteAt(next[:], offset)
	if err != nil {
		return fmt.Errorf("%w: 写入COFF特征失败: %w", ErrIO, err)
	}
	if n != len(next) {
		return fmt.Errorf("%w: 写入COFF特征失败: %w", ErrIO, io.ErrShortWrite)
	}

	if err := flushFile(p.file); err != nil {
		return fmt.Errorf("%w: 同步文件失败: %w", ErrIO, err)
	}

	written, err := ReadAt(p.file, offset, len(next))
	if err != nil {
		return fmt.Errorf("校验写入失败: %w", err)
	}
	if !bytes.Equal(written, next[:]) {
		return fmt.Errorf("%w: 校验写入失败: 期望 % X, 实际 % X", ErrIO, next[:], written)
	}

	return nil
}

func (p *Patcher) snapshot() *Status {
	s := *p.status
	return &s
}
