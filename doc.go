// Package apitoast provides an HTTP client for JSON APIs that authenticates
// with a bearer token and reports every outcome as a toast notification.
//
// The toast library is optional. When none is available, requests behave
// exactly the same, silently.
//
// Basic usage:
//
//	import (
//	    "github.com/vaultsandbox/apitoast"
//	    "github.com/vaultsandbox/apitoast/auth"
//	    _ "github.com/vaultsandbox/apitoast/notify/term"
//	)
//
//	api := apitoast.New(apitoast.Config{
//	    BaseURL:        "https://api.example.com",
//	    TokenSource:    auth.Env("API_TOKEN"),
//	    SuccessMessage: apitoast.SuccessText("Saved"),
//	})
//
//	var user struct{ Name string }
//	if err := api.Get(ctx, "/users/42", &user); err != nil {
//	    // The error toast has already been shown; err is the original
//	    // transport error.
//	    log.Fatal(err)
//	}
//
// Each handle is independent; toasts from all handles that are not given a
// [notify.Bridge] go through the process-wide [notify.Default] bridge.
package apitoast
