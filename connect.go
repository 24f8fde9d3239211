package main

import (
	"context"
	"fmt"
	"log"

	"nightshift/api"
	"nightshift/cache"
	"nightshift/config"
	"nightshift/handlers"
	"nightshift/mock"
	"nightshift/session"
)

// connector logs in with the configured credentials, or serves the built-in
// sample data when offline. db may be nil.
func connector(cfg config.Config, db *cache.DB) handlers.Connector {
	return func(ctx context.Context) (*session.Session, error) {
		if cfg.Offline {
			b, err := mock.Seeded()
			if err != nil {
				return nil, err
			}
			log.Println("INFO: offline mode, using sample data")
			s := session.New(session.MockSource(b), nil, nil)
			if _, err := s.CurrentUser(ctx); err != nil {
				return nil, err
			}
			return s, s.Refresh(ctx)
		}

		c, err := api.NewClient(cfg.API.BaseURL, cfg.Timeout())
		if err != nil {
			return nil, err
		}
		if cfg.API.Email == "" {
			return nil, fmt.Errorf("api.email is not configured")
		}
		res, err := c.Login(ctx, cfg.API.Email, cfg.API.Password)
		if err != nil {
			return nil, fmt.Errorf("login failed: %w", err)
		}
		user := res.Employee
		if user == nil {
			if user, err = c.CurrentUser(ctx); err != nil {
				return nil, fmt.Errorf("failed to get current user: %w", err)
			}
		}
		orgID, reviewer := "", ""
		if user != nil {
			orgID, reviewer = string(user.OrgID), user.EmployeeID
		}
		if res.Organization != nil {
			orgID = string(res.Organization.ID)
		}
		log.Printf("INFO: logged in to %s as %s", c.BaseURL(), cfg.API.Email)
		if user != nil && user.MustChangePassword {
			log.Println("WARN: the password must be changed, POST /api/auth/change-password")
		}

		s := session.New(session.APISource(c, orgID, reviewer), user, db)
		s.Hydrate(ctx)
		if err := s.Refresh(ctx); err != nil {
			// hydrated snapshots stay visible, the error is on each store
			log.Printf("WARN: initial fetch failed: %v", err)
		}
		return s, nil
	}
}
