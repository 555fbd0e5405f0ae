// Package main provides the LAAPatch GUI application.
package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ZacharyZcR/LAAPatch/internal/pe"
)

func main() {
	myApp := app.New()
	myWindow := myApp.NewWindow("LAAPatch - Large Address Aware 切换工具")
	myWindow.Resize(fyne.NewSize(640, 320))

	// File path
	filePathEntry := widget.NewEntry()
	filePathEntry.SetPlaceHolder("选择EXE文件...")

	// Status output
	statusOutput := widget.NewLabel("")
	statusOutput.Wrapping = fyne.TextWrapWord

	// Status label
	statusLabel := widget.NewLabel("就绪")

	refresh := func() {
		text, err := describe(filePathEntry.Text)
		if err != nil {
			statusOutput.SetText("")
			dialog.ShowError(err, myWindow)
			statusLabel.SetText("读取失败")
			return
		}
		statusOutput.SetText(text)
		statusLabel.SetText("读取完成")
	}

	// File picker button
	fileButton := widget.NewButton("选择文件", func() {
		dialog.ShowFileOpen(func(file fyne.URIReadCloser, err error) {
			if err != nil || file == nil {
				return
			}
			defer func() { _ = file.Close() }()
			filePathEntry.SetText(file.URI().Path())
			refresh()
		}, myWindow)
	})

	inspectButton := widget.NewButton("读取状态", func() {
		if filePathEntry.Text == "" {
			dialog.ShowError(fmt.Errorf("请先选择EXE文件"), myWindow)
			return
		}
		refresh()
	})

	// Disabled while a confirm dialog holds the write handle.
	var toggleButton *widget.Button
	toggleButton = widget.NewButton("切换 Large Address Aware", func() {
		if filePathEntry.Text == "" {
			dialog.ShowError(fmt.Errorf("请先选择EXE文件"), myWindow)
			return
		}

		toggleButton.Disable()

		patcher, err := pe.NewPatcher(filePathEntry.Text)
		if err != nil {
			dialog.ShowError(err, myWindow)
			toggleButton.Enable()
			return
		}

		status, err := patcher.Inspect()
		if err != nil {
			dialog.ShowError(err, myWindow)
			statusLabel.SetText("读取失败")
			toggleButton.Enable()
			return
		}

		question := fmt.Sprintf("Large Address Aware 当前%s，确定要%s吗？",
			stateText(status.LargeAddressAware()), actionText(status.LargeAddressAware()))
		if status.Checksum.Present() {
			question += "\n" + checksumText(status.Checksum)
		}

		dialog.ShowConfirm("确认修改", question, func(ok bool) {
			defer toggleButton.Enable()

			decision := pe.Discard
			if ok {
				decision = pe.Apply
			}

			result, err := patcher.Resolve(decision)
			if err != nil {
				dialog.ShowError(err, myWindow)
				statusLabel.SetText("修改失败")
				return
			}

			if decision == pe.Apply {
				statusLabel.SetText(fmt.Sprintf("Large Address Aware %s", stateText(result.LargeAddressAware())))
			} else {
				statusLabel.SetText("EXE文件未被修改")
			}
			refresh()
		}, myWindow)
	})

	// Layout
	fileBox := container.NewBorder(nil, nil, nil, fileButton, filePathEntry)

	mainContent := container.NewBorder(
		container.NewVBox(
			widget.NewLabel("EXE文件路径:"),
			fileBox,
			widget.NewSeparator(),
			container.NewGridWithColumns(2, inspectButton, toggleButton),
		),
		container.NewVBox(
			widget.NewSeparator(),
			statusLabel,
		),
		nil,
		nil,
		container.NewVScroll(statusOutput),
	)

	myWindow.SetContent(mainContent)
	myWindow.ShowAndRun()
}

func describe(filepath string) (string, error) {
	status, err := pe.ReadStatus(filepath)
	if err != nil {
		return "", err
	}

	text := fmt.Sprintf("文件路径: %s\n架构: %s\nCOFF特征: 0x%04X (偏移 0x%X)\nLarge Address Aware: %s\n",
		status.Path, status.Architecture, status.Characteristics.Uint16(), status.Offset,
		stateText(status.LargeAddressAware()))
	if status.Checksum.Present() {
		text += fmt.Sprintf("校验和: 0x%08X\n%s\n", status.Checksum.Stored, checksumText(status.Checksum))
	}
	return text, nil
}

func checksumText(c *pe.ChecksumInfo) string {
	if c.Valid {
		return "文件包含校验和，修改后校验和将不再匹配。"
	}
	return fmt.Sprintf("文件校验和已不匹配 (计算: 0x%08X)。", c.Computed)
}

func stateText(enabled bool) string {
	if enabled {
		return "已启用"
	}
	return "已禁用"
}

func actionText(enabled bool) string {
	if enabled {
		return "禁用"
	}
	return "启用"
}
