package game

// SuggestedGenres are offered when entering a genre. Any other text is allowed.
var SuggestedGenres = []string{
	"Action", "Adventure", "RPG", "Strategy", "Simulation", "Sports",
	"Racing", "Puzzle", "Platformer", "Shooter", "Fighting", "Horror",
	"Arcade", "Indie", "MMO", "Other",
}

// SuggestedPlatforms are offered when entering a platform. Any other text is allowed.
var SuggestedPlatforms = []string{
	"PC", "PlayStation 5", "PlayStation 4", "Xbox Series X/S", "Xbox One",
	"Nintendo Switch", "Mobile", "3DS", "Wii", "WiiU", "Other",
}
