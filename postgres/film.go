package postgres

import (
	"context"
	"fmt"

	"bechdel/film"

	"gorm.io/gorm"
)

const importBatchSize = 500

// FilmModel is one row of the films table. Position keeps the order of the
// imported file so the API serves films in source order.
type FilmModel struct {
	ID                     uint   `gorm:"primaryKey"`
	Position               int    `gorm:"column:position;not null;uniqueIndex"`
	Year                   int    `gorm:"column:year;not null;index"`
	IMDB                   string `gorm:"column:imdb;not null;default:''"`
	Title                  string `gorm:"column:title;not null"`
	Test                   string `gorm:"column:test;not null;default:''"`
	CleanTest              string `gorm:"column:clean_test;not null;default:''"`
	Outcome                string `gorm:"column:outcome;not null"`
	Budget                 *int64 `gorm:"column:budget"`
	DomesticGross          *int64 `gorm:"column:domgross"`
	InternationalGross     *int64 `gorm:"column:intgross"`
	Code                   string `gorm:"column:code;not null;default:''"`
	Budget2013             *int64 `gorm:"column:budget_2013"`
	DomesticGross2013      *int64 `gorm:"column:domgross_2013"`
	InternationalGross2013 *int64 `gorm:"column:intgross_2013"`
	PeriodCode             *int   `gorm:"column:period_code"`
	DecadeCode             *int   `gorm:"column:decade_code"`
}

func (FilmModel) TableName() string {
	return "films"
}

func (m FilmModel) toFilm() (film.Film, error) {
	outcome, err := film.ParseOutcome(m.Outcome)
	if err != nil {
		return film.Film{}, fmt.Errorf("position %d: %w", m.Position, err)
	}
	f := film.Film{
		Year:                   m.Year,
		IMDB:                   m.IMDB,
		Title:                  m.Title,
		Test:                   m.Test,
		CleanTest:              m.CleanTest,
		Binary:                 outcome,
		Budget:                 m.Budget,
		DomesticGross:          m.DomesticGross,
		InternationalGross:     m.InternationalGross,
		Code:                   m.Code,
		Budget2013:             m.Budget2013,
		DomesticGross2013:      m.DomesticGross2013,
		InternationalGross2013: m.InternationalGross2013,
		PeriodCode:             m.PeriodCode,
		DecadeCode:             m.DecadeCode,
	}
	if err := f.Validate(); err != nil {
		return film.Film{}, fmt.Errorf("position %d: %w", m.Position, err)
	}
	return f, nil
}

func newFilmModel(position int, f film.Film) FilmModel {
	return FilmModel{
		Position:               position,
		Year:                   f.Year,
		IMDB:                   f.IMDB,
		Title:                  f.Title,
		Test:                   f.Test,
		CleanTest:              f.CleanTest,
		Outcome:                string(f.Binary),
		Budget:                 f.Budget,
		DomesticGross:          f.DomesticGross,
		InternationalGross:     f.InternationalGross,
		Code:                   f.Code,
		Budget2013:             f.Budget2013,
		DomesticGross2013:      f.DomesticGross2013,
		InternationalGross2013: f.InternationalGross2013,
		PeriodCode:             f.PeriodCode,
		DecadeCode:             f.DecadeCode,
	}
}

// FilmRepository reads the dataset from PostgreSQL. It is a dataset source,
// the API never queries it per request.
type FilmRepository struct {
	db *gorm.DB
}

func NewFilmRepository(db *gorm.DB) *FilmRepository {
	return &FilmRepository{db: db}
}

func (r *FilmRepository) String() string {
	return "postgres:films"
}

// Films returns every stored film in import order.
func (r *FilmRepository) Films(ctx context.Context) ([]film.Film, error) {
	var models []FilmModel
	if err := r.db.WithContext(ctx).Order("position").Find(&models).Error; err != nil {
		return nil, err
	}

	films := make([]film.Film, 0, len(models))
	for _, m := range models {
		f, err := m.toFilm()
		if err != nil {
			return nil, err
		}
		films = append(films, f)
	}
	return films, nil
}

// ImportFilms replaces the table content with films in a single transaction.
func (r *FilmRepository) ImportFilms(ctx context.Context, films []film.Film) (int, error) {
	models := make([]FilmModel, len(films))
	for i, f := range films {
		models[i] = newFilmModel(i, f)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM films").Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.CreateInBatches(models, importBatchSize).Error
	})
	if err != nil {
		return 0, err
	}
	return len(models), nil
}
