package main

import (
	"github.com/urfave/cli/v2"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

func (s *srv) createGroup(cctx *cli.Context) error {
	s.loadDatabase()
	s.loadRepos()
	s.loadDomains()

	group, err := s.groupDomain.Create(s.ctx, cctx.String("slug"), cctx.String("title"), cctx.String("description"))
	if err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Created group %s (%s)", group.Slug, group.ID)
	return nil
}

func (s *srv) deleteGroup(cctx *cli.Context) error {
	s.loadDatabase()
	s.loadRepos()
	s.loadDomains()

	if err := s.groupDomain.Delete(s.ctx, cctx.String("slug")); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Deleted group %s", cctx.String("slug"))
	return nil
}

// clearCache only reaches the redis cache. An in-memory cache belongs to the
// api process and is gone when it restarts.
func (s *srv) clearCache(*cli.Context) error {
	if xcontext.Configs(s.ctx).Redis.Addr == "" {
		xcontext.Logger(s.ctx).Warnf("No redis configured, nothing to clear")
		return nil
	}

	s.loadPageCache()
	if err := s.pageCache.Clear(s.ctx); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Cleared page cache")
	return nil
}

func (s *srv) reindex(*cli.Context) error {
	if xcontext.Configs(s.ctx).Search.IndexDir == "" {
		xcontext.Logger(s.ctx).Warnf("The search index lives in memory, it is rebuilt by the api command")
		return nil
	}

	s.loadDatabase()
	s.loadSearchIndex()
	defer s.indexer.Close()
	s.loadRepos()
	s.loadDomains()

	n, err := s.searchDomain.Reindex(s.ctx)
	if err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Indexed %d posts", n)
	return nil
}
