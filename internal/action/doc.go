// Package action turns form input into Jenkins requests and their results.
//
// Build is a pure function from an action kind and the raw field values to a
// validated Request. An Executor performs the single client call for a
// Request and renders the text the user sees. Guard keeps a second press of
// the same button from issuing a second request while the first is running.
//
//	exec := action.NewExecutor(jenkins.NewClient(creds))
//	out := exec.Dispatch(ctx, action.ListUsers, action.Fields{})
//	fmt.Println(out.Message)
package action
