// Package model はドメインモデルを定義する。
package model

// Genre は映画のジャンル情報を表す。
type Genre struct {
	Name        string
	Description string
}

// Director は監督情報を表す。
// BirthYear/DeathYearは不明の場合nil。
type Director struct {
	Name      string
	Bio       string
	BirthYear *int
	DeathYear *int
}

// Movie はカタログ上の映画を表す。
// HTTP経由では読み取り専用であり、レコードはseedサブコマンドから投入される。
type Movie struct {
	ID          string
	Title       string
	Description string
	Genre       Genre
	Director    Director
	Actors      []string
	ImagePath   string
	Featured    bool
}
