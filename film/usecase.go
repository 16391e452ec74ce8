package film

import "context"

type Service interface {
	LoadAll(ctx context.Context, p Pagination) (FilmResult, error)
	LoadByYear(ctx context.Context, year int, p Pagination) (FilmResult, error)
	LoadYears(ctx context.Context) ([]int, error)
}

// Repository is a read-only view of the loaded dataset. Returned slices are
// shared and must not be modified.
type Repository interface {
	AllFilms(ctx context.Context) ([]Film, error)
	FilmsByYear(ctx context.Context, year int) ([]Film, error)
	Years(ctx context.Context) ([]int, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) LoadAll(ctx context.Context, p Pagination) (FilmResult, error) {
	if err := p.Validate(); err != nil {
		return FilmResult{}, err
	}

	films, err := uc.r.AllFilms(ctx)
	if err != nil {
		return FilmResult{}, err
	}

	return FilmResult{
		TotalCount: len(films),
		Results:    p.window(films),
	}, nil
}

func (uc *Usecase) LoadByYear(ctx context.Context, year int, p Pagination) (FilmResult, error) {
	if err := p.Validate(); err != nil {
		return FilmResult{}, err
	}

	films, err := uc.r.FilmsByYear(ctx, year)
	if err != nil {
		return FilmResult{}, err
	}
	if len(films) == 0 {
		return FilmResult{}, ErrNoFilmsForYear
	}

	return FilmResult{
		TotalCount: len(films),
		Results:    p.window(films),
	}, nil
}

func (uc *Usecase) LoadYears(ctx context.Context) ([]int, error) {
	years, err := uc.r.Years(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]int, len(years))
	copy(out, years)
	return out, nil
}
