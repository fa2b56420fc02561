// Package seed holds the compiled-in default catalog. It is used to bootstrap
// an empty remote store on first run and as the last fallback when neither
// backend has data.
package seed

import "syndl/internal/data/entity"

// Movies returns a fresh copy of the default catalog. Callers own the result
// and may mutate it freely.
func Movies() []entity.Movie {
	return []entity.Movie{
		{
			ID:              "avatar-fire-and-ash",
			Title:           "Avatar: Fire and Ash",
			Year:            2025,
			Duration:        "3h 17min",
			DurationSeconds: 11820,
			Rating:          8.9,
			Genre:           []string{"Action", "Sci-Fi", "Adventure"},
			Synopsis:        "Jake Sully and Neytiri have formed a family and are doing everything to stay together. However, they must leave their home and explore the regions of Pandora when an ancient threat resurfaces.",
			Thumbnail:       "assets/thumbnails/avatar.jpg",
			PreviewURL:      "https://dl.dropboxusercontent.com/scl/fi/8tmqk55d2fio12zd37gyi/start.mp4?rlkey=c0p9cxfbha3l2qkefqv4lxl6p",
			FullMovieURL:    "https://drive.google.com/file/d/1OmdI_pBnO-SB-8cyxJXGEsONLPYPTXtq/preview",
			LockerURL:       "https://appverification.site/cl/i/krr4k8",
			Quality:         "1080p",
			Featured:        true,
			IsNew:           true,
			Cast: []entity.CastMember{
				{Name: "Sam Worthington", Role: "Jake Sully"},
				{Name: "Zoe Saldana", Role: "Neytiri"},
				{Name: "Sigourney Weaver", Role: "Kiri"},
				{Name: "Stephen Lang", Role: "Quaritch"},
			},
			AddedDate: "2025-01-15",
		},
		{
			ID:              "captain-america-brave-new-world",
			Title:           "Captain America: Brave New World",
			Year:            2025,
			Duration:        "1h 52min",
			DurationSeconds: 6742,
			Rating:          8.4,
			Genre:           []string{"Action", "Superhero", "Thriller"},
			Synopsis:        "Sam Wilson, bearing the mantle of Captain America, finds himself in the middle of an international incident. He must discover the reason behind a nefarious global plot before the true mastermind has the entire world seeing red.",
			Thumbnail:       "assets/thumbnails/captain-america.jpg",
			PreviewURL:      "https://dl.dropboxusercontent.com/scl/fi/petdvzpto51w5a6ze50xl/start-captain-america.mp4?rlkey=092xizc8e9uhmcowt6q8yr7x9",
			FullMovieURL:    "https://drive.google.com/file/d/1Bf-EtSTH3-gzau5hbVa3pmBK8JXtTuLq/preview",
			LockerURL:       "https://appverification.site/cl/i/NEW_LOCKER_ID",
			Quality:         "1080p",
			Featured:        false,
			IsNew:           true,
			Cast: []entity.CastMember{
				{Name: "Anthony Mackie", Role: "Sam Wilson"},
				{Name: "Harrison Ford", Role: "Thaddeus Ross"},
				{Name: "Danny Ramirez", Role: "Joaquín Torres"},
				{Name: "Shira Haas", Role: "Sabra"},
			},
			AddedDate: "2025-02-01",
		},
	}
}
