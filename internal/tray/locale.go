package tray

import "github.com/goproxy/taskbar/internal/constants"

// Strings are the menu labels for one locale.
type Strings struct {
	Show     string
	Hide     string
	SetProxy string
	Reload   string
	Exit     string
	// NoProxy labels the empty (direct) candidate.
	NoProxy string
}

// English is the default label set.
var English = Strings{
	Show:     "Show",
	Hide:     "Hide",
	SetProxy: "Set IE Proxy",
	Reload:   "Reload",
	Exit:     "Exit",
	NoProxy:  "<None>",
}

// SimplifiedChinese is used for the zh-CN system locale.
var SimplifiedChinese = Strings{
	Show:     "显示",
	Hide:     "隐藏",
	SetProxy: "设置 IE 代理",
	Reload:   "重新载入",
	Exit:     "退出",
	NoProxy:  "禁用代理",
}

// LocaleFor returns the labels for a Windows locale id.
func LocaleFor(lcid uint32) Strings {
	if lcid == constants.LocaleZhCN {
		return SimplifiedChinese
	}
	return English
}
