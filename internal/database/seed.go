// CineArchive - Movie Catalogue Analytics and Recommendations
// Copyright 2026 The CineArchive Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/anshulrawat2507/CineArchive

package database

import (
	"context"
	"fmt"

	"github.com/anshulrawat2507/CineArchive/internal/logging"
	"github.com/anshulrawat2507/CineArchive/internal/models"
)

// DemoPassword is the password of every seeded demo account.
const DemoPassword = "cinearchive-demo"

type demoMovie struct {
	imdbID, title, genre, language string
	year, minutes                  int
	director                       string
	actors                         [3]string
	rating                         float64
	votes                          int64
}

var demoMovies = []demoMovie{
	{"tt1187043", "3 Idiots", "Comedy, Drama", "Hindi", 2009, 170, "Rajkumar Hirani", [3]string{"Aamir Khan", "Madhavan", "Sharman Joshi"}, 8.4, 420000},
	{"tt5074352", "Dangal", "Action, Biography, Drama", "Hindi", 2016, 161, "Nitesh Tiwari", [3]string{"Aamir Khan", "Fatima Sana Shaikh", "Sanya Malhotra"}, 8.3, 200000},
	{"tt0169102", "Lagaan", "Drama, Musical, Sport", "Hindi", 2001, 224, "Ashutosh Gowariker", [3]string{"Aamir Khan", "Gracy Singh", "Rachel Shelley"}, 8.1, 120000},
	{"tt0986264", "Taare Zameen Par", "Drama, Family", "Hindi", 2007, 165, "Aamir Khan", [3]string{"Darsheel Safary", "Aamir Khan", "Tisca Chopra"}, 8.3, 200000},
	{"tt0073707", "Sholay", "Action, Adventure, Comedy", "Hindi", 1975, 204, "Ramesh Sippy", [3]string{"Sanjeev Kumar", "Dharmendra", "Amitabh Bachchan"}, 8.1, 60000},
	{"tt0112870", "Dilwale Dulhania Le Jayenge", "Drama, Romance", "Hindi", 1995, 189, "Aditya Chopra", [3]string{"Shah Rukh Khan", "Kajol", "Amrish Puri"}, 8.0, 75000},
	{"tt1954470", "Gangs of Wasseypur", "Action, Comedy, Crime", "Hindi", 2012, 321, "Anurag Kashyap", [3]string{"Manoj Bajpayee", "Richa Chadha", "Nawazuddin Siddiqui"}, 8.2, 100000},
	{"tt1562872", "Zindagi Na Milegi Dobara", "Comedy, Drama", "Hindi", 2011, 155, "Zoya Akhtar", [3]string{"Hrithik Roshan", "Farhan Akhtar", "Abhay Deol"}, 8.2, 85000},
	{"tt8108198", "Andhadhun", "Crime, Thriller", "Hindi", 2018, 139, "Sriram Raghavan", [3]string{"Ayushmann Khurrana", "Tabu", "Radhika Apte"}, 8.2, 100000},
	{"tt2338151", "PK", "Comedy, Drama, Sci-Fi", "Hindi", 2014, 153, "Rajkumar Hirani", [3]string{"Aamir Khan", "Anushka Sharma", "Sanjay Dutt"}, 8.1, 190000},
	{"tt3322420", "Queen", "Adventure, Comedy, Drama", "Hindi", 2013, 146, "Vikas Bahl", [3]string{"Kangana Ranaut", "Rajkummar Rao", "Lisa Haydon"}, 8.1, 65000},
	{"tt4430212", "Drishyam", "Crime, Drama, Mystery", "Hindi", 2015, 163, "Nishikant Kamat", [3]string{"Ajay Devgn", "Shriya Saran", "Tabu"}, 8.2, 90000},
	{"tt2631186", "Baahubali: The Beginning", "Action, Drama", "Telugu", 2015, 159, "S.S. Rajamouli", [3]string{"Prabhas", "Rana Daggubati", "Anushka Shetty"}, 8.0, 130000},
	{"tt6148156", "Vikram Vedha", "Action, Crime, Thriller", "Tamil", 2017, 147, "Pushkar", [3]string{"Madhavan", "Vijay Sethupathi", "Shraddha Srinath"}, 8.2, 45000},
	{"tt0093603", "Nayakan", "Crime, Drama", "Tamil", 1987, 145, "Mani Ratnam", [3]string{"Kamal Haasan", "Saranya Ponvannan", "Delhi Ganesh"}, 8.6, 25000},
}

var demoUsers = []models.RegisterRequest{
	{Name: "Asha Verma", Email: "asha@demo.cinearchive.local", Password: DemoPassword, Region: "Maharashtra", AgeGroup: "25-34"},
	{Name: "Rohan Mehta", Email: "rohan@demo.cinearchive.local", Password: DemoPassword, Region: "Delhi", AgeGroup: "18-24"},
	{Name: "Meera Iyer", Email: "meera@demo.cinearchive.local", Password: DemoPassword, Region: "Tamil Nadu", AgeGroup: "35-44"},
}

// demoRatings maps a demo user index to imdb id and rating.
var demoRatings = map[int]map[string]float64{
	0: {"tt1187043": 9, "tt1562872": 8.5, "tt3322420": 8, "tt0112870": 7},
	1: {"tt1954470": 9.5, "tt8108198": 9, "tt4430212": 8, "tt0073707": 7.5},
	2: {"tt0093603": 9, "tt6148156": 8.5, "tt2631186": 7, "tt0169102": 8},
}

// SeedDemoData fills an empty catalogue with a small demo data set of
// movies, viewer accounts and ratings. It does nothing when the movies
// table already has rows and reports whether it seeded.
func (db *DB) SeedDemoData(ctx context.Context) (bool, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var count int64
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies").Scan(&count); err != nil {
		return false, fmt.Errorf("count movies: %w", err)
	}
	if count > 0 {
		logging.Debug().Int64("movies", count).Msg("Catalogue not empty, skipping demo seed")
		return false, nil
	}

	logging.Info().Msg("Seeding database with demo catalogue...")

	ids := make(map[string]int64, len(demoMovies))
	for i := range demoMovies {
		dm := &demoMovies[i]
		year, minutes, rating, votes := dm.year, dm.minutes, dm.rating, dm.votes
		id, err := db.InsertMovie(ctx, &models.AddMovieRequest{
			IMDbID:          dm.imdbID,
			Title:           dm.title,
			Genre:           dm.genre,
			Language:        dm.language,
			ReleaseYear:     &year,
			DurationMinutes: &minutes,
			Director:        dm.director,
			Actor1:          dm.actors[0],
			Actor2:          dm.actors[1],
			Actor3:          dm.actors[2],
			IMDbRating:      &rating,
			Votes:           &votes,
		})
		if err != nil {
			return false, fmt.Errorf("seed movie %s: %w", dm.imdbID, err)
		}
		ids[dm.imdbID] = id
	}

	for i := range demoUsers {
		user, err := db.RegisterUser(ctx, &demoUsers[i])
		if err != nil {
			return false, fmt.Errorf("seed user %s: %w", demoUsers[i].Email, err)
		}
		for imdbID, rating := range demoRatings[i] {
			if err := db.UpsertRating(ctx, user.ID, ids[imdbID], rating); err != nil {
				return false, fmt.Errorf("seed rating: %w", err)
			}
		}
	}

	logging.Info().
		Int("movies", len(demoMovies)).
		Int("users", len(demoUsers)).
		Msg("Demo catalogue seeded")
	return true, nil
}
