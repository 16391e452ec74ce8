package httpserver

import "bechdel/film"

type ListFilmsRequest struct {
	Page     int `query:"page" validate:"omitempty,min=1,max=10000000"`
	PageSize int `query:"pageSize" validate:"omitempty,min=1,max=10000"`
}

func (r ListFilmsRequest) Pagination() film.Pagination {
	return film.Pagination{Page: r.Page, PageSize: r.PageSize}
}

type FilmsByYearRequest struct {
	Year     int `param:"year"`
	Page     int `query:"page" validate:"omitempty,min=1,max=10000000"`
	PageSize int `query:"pageSize" validate:"omitempty,min=1,max=10000"`
}

func (r FilmsByYearRequest) Pagination() film.Pagination {
	return film.Pagination{Page: r.Page, PageSize: r.PageSize}
}
