package seed

// Generation ranges.
const (
	pointsStep            = 10
	maxMovement           = 15
	minCompetitions       = 4
	competitionsRange     = 27
	workerChannelMultiple = 2
)

// Insert statements are flushed in transactions of this many rows.
const batchSize = 500

// Verification tolerance for averaged points.
const avgPointsTolerance = 0.01

var firstNames = []string{ //nolint:gochecknoglobals // read-only name pool
	"Carlos", "Jannik", "Novak", "Alexander", "Daniil", "Taylor", "Casper",
	"Holger", "Iga", "Aryna", "Coco", "Elena", "Jessica", "Qinwen", "Ons",
	"Marketa", "Stefanos", "Hubert", "Alex", "Grigor", "Paula", "Emma",
}

var lastNames = []string{ //nolint:gochecknoglobals // read-only name pool
	"Alcaraz", "Sinner", "Djokovic", "Zverev", "Medvedev", "Fritz", "Ruud",
	"Rune", "Swiatek", "Sabalenka", "Gauff", "Rybakina", "Pegula", "Zheng",
	"Jabeur", "Vondrousova", "Tsitsipas", "Hurkacz", "de Minaur", "Dimitrov",
	"Badosa", "Navarro",
}

var countries = []string{ //nolint:gochecknoglobals // read-only country pool
	"Spain", "Italy", "Serbia", "Germany", "Russia", "USA", "Norway",
	"Denmark", "Poland", "Belarus", "Kazakhstan", "China", "Tunisia",
	"Czech Republic", "Greece", "Australia", "Bulgaria", "France",
}
