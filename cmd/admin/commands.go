package main

import (
	"context"
	"errors"
	"estatehub/backend/internal/account"
	"estatehub/backend/internal/appeal"
	"estatehub/backend/internal/complaint"
	"estatehub/backend/internal/listing"
	"fmt"
	"io"
	"strconv"
)

var errUsage = errors.New(usage)

type app struct {
	Accounts   *account.Service
	Complaints *complaint.Service
	Appeals    *appeal.Service
	Listings   *listing.Service
	// AdminID is recorded as resolved_by on appeals decided from the CLI.
	AdminID string
}

// optional returns args[i] or "" when it is absent.
func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func (a *app) run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	command, args := args[0], args[1:]

	switch command {
	case "ban":
		if len(args) < 1 || len(args) > 2 {
			return errUsage
		}
		var hours int
		if len(args) == 2 {
			h, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid duration %q: provide whole hours", args[1])
			}
			hours = h
		}
		if _, err := a.Accounts.Ban(ctx, args[0], hours); err != nil {
			return fmt.Errorf("ban user: %w", err)
		}
		fmt.Fprintf(out, "User %s has been banned.\n", args[0])

	case "unban":
		if len(args) != 1 {
			return errUsage
		}
		if _, err := a.Accounts.Unban(ctx, args[0]); err != nil {
			return fmt.Errorf("unban user: %w", err)
		}
		fmt.Fprintf(out, "User %s has been unbanned.\n", args[0])

	case "complaint-status":
		if len(args) < 2 || len(args) > 3 {
			return errUsage
		}
		c, err := a.Complaints.UpdateStatus(ctx, args[0], args[1], optional(args, 2), "")
		if err != nil {
			return fmt.Errorf("update complaint: %w", err)
		}
		fmt.Fprintf(out, "Complaint %s is now %s.\n", c.ID, c.Status)

	case "resolve-appeal":
		if len(args) < 2 || len(args) > 3 {
			return errUsage
		}
		if a.AdminID == "" {
			return errors.New("ADMIN_USER_ID must be set to resolve appeals")
		}
		res, err := a.Appeals.ResolveAppeal(ctx, args[0], a.AdminID, args[1], optional(args, 2))
		if err != nil {
			return fmt.Errorf("resolve appeal: %w", err)
		}
		fmt.Fprintf(out, "Appeal %s %s, property %s.\n", res.Appeal.ID, res.Decision, res.PropertyAction)

	case "property-status":
		if len(args) < 2 || len(args) > 3 {
			return errUsage
		}
		p, err := a.Listings.UpdateStatus(ctx, args[0], args[1], optional(args, 2))
		if err != nil {
			return fmt.Errorf("update property: %w", err)
		}
		fmt.Fprintf(out, "Property %s is now %s.\n", p.ID, p.Status)

	case "promote":
		if len(args) != 1 {
			return errUsage
		}
		if _, err := a.Accounts.Promote(ctx, args[0]); err != nil {
			return fmt.Errorf("promote user: %w", err)
		}
		fmt.Fprintf(out, "User %s is now an admin.\n", args[0])

	default:
		return fmt.Errorf("unknown command %q\n\n%s", command, usage)
	}
	return nil
}
