package accounts

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Account, error) {
	return s.repo.List(ctx)
}

// Tree loads the chart of accounts and assembles the hierarchy.
func (s *Service) Tree(ctx context.Context) (*Tree, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTree(list)
}
