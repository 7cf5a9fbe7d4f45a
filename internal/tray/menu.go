package tray

// Menu command ids. They sit above WM_USER so they never collide with
// system commands posted to the host window.
const (
	wmUser = 0x0400

	CmdShow   = wmUser + 21
	CmdHide   = wmUser + 22
	CmdReload = wmUser + 23
	CmdExit   = wmUser + 25
	// CmdProxyBase is the id of proxy candidate 0; candidate i is CmdProxyBase+i.
	CmdProxyBase = wmUser + 26
)

// MenuItem is one entry of the context menu. An item with a Submenu is a
// popup and its ID is unused.
type MenuItem struct {
	ID      int
	Label   string
	Checked bool
	Submenu []MenuItem
}

// Menu is the context menu, top to bottom.
type Menu struct {
	Items []MenuItem
}

// BuildMenu lays out the context menu for the given candidates. The Set
// Proxy submenu only appears when there is something besides the direct
// entry to choose; the candidate equal to current is checked.
func BuildMenu(s Strings, candidates []string, current string) Menu {
	items := []MenuItem{
		{ID: CmdShow, Label: s.Show},
		{ID: CmdHide, Label: s.Hide},
	}

	if len(candidates) > 1 {
		sub := make([]MenuItem, 0, len(candidates))
		for i, candidate := range candidates {
			label := candidate
			if label == "" {
				label = s.NoProxy
			}
			sub = append(sub, MenuItem{
				ID:      CmdProxyBase + i,
				Label:   label,
				Checked: candidate == current,
			})
		}
		items = append(items, MenuItem{Label: s.SetProxy, Submenu: sub})
	}

	items = append(items,
		MenuItem{ID: CmdReload, Label: s.Reload},
		MenuItem{ID: CmdExit, Label: s.Exit},
	)
	return Menu{Items: items}
}
