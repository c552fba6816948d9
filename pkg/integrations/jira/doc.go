// Package jira gives access to Anaconda's JIRA instance through a single
// authenticated client shared by the whole process.
//
// The client is built lazily by [New] from two credentials, the user's email
// and an API token, and is checked against the server before it is kept:
//
//	api, err := jira.New(ctx, store)
//	if err != nil {
//	    return err // AUTH_FAILED
//	}
//	err = api.Access(func(c *gojira.Client) error {
//	    _, _, err := c.Issue.Get("PKG-1", nil)
//	    return err
//	})
//
// Construction is guarded by a mutex. A failed attempt leaves no client
// behind, so callers may fix their credentials and call [New] again.
package jira
