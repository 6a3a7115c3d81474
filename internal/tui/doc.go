// Package tui implements the interactive user management form.
//
// The form is a single Bubble Tea screen: four text inputs (Username, Full
// Name, Email, Role Name), one button per action and an output area. It
// follows the Model-Update-View pattern, with all state in Model.
//
// # Usage Example
//
//	exec := action.NewExecutor(jenkins.NewClient(settings.Credentials()))
//	if err := tui.Run(ctx, exec, settings.BaseURL); err != nil {
//	    return err
//	}
//
// # Actions
//
// Pressing a button validates the inputs in Update. Invalid input opens the
// error popup without touching the network. Valid requests run as a tea.Cmd
// and report back with an outcome message. An action.Guard allows one
// in-flight request per action; the busy button shows a spinner and further
// presses of it are ignored until the outcome arrives.
//
// Successful actions replace the output area text. Failures open a popup with
// the outcome message, the short cause and troubleshooting tips.
//
// # Key Bindings
//
//   - tab/↓, shift+tab/↑: move focus between inputs and buttons
//   - enter: press the focused button (next field inside an input)
//   - ctrl+n, ctrl+l, ctrl+r, ctrl+d: create, list, assign, delete
//   - ctrl+y: copy the output area to the clipboard
//   - q: quit (only when a button has focus), ctrl+c: quit
//   - enter/esc: close the error popup
package tui
