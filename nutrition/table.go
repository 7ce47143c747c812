package nutrition

// builtinTable holds approximate macros per 100 g or 100 ml.
var builtinTable = map[string]MacroBundle{
	"almonds":        {Calories: 579, ProteinG: 21, CarbsG: 22, FatG: 50},
	"apple":          {Calories: 52, ProteinG: 0.3, CarbsG: 14, FatG: 0.2},
	"avocado":        {Calories: 160, ProteinG: 2, CarbsG: 9, FatG: 15},
	"banana":         {Calories: 89, ProteinG: 1.1, CarbsG: 23, FatG: 0.3},
	"bread":          {Calories: 265, ProteinG: 9, CarbsG: 49, FatG: 3.2},
	"broccoli":       {Calories: 34, ProteinG: 2.8, CarbsG: 7, FatG: 0.4},
	"brown rice":     {Calories: 112, ProteinG: 2.3, CarbsG: 24, FatG: 0.8},
	"butter":         {Calories: 717, ProteinG: 0.9, CarbsG: 0.1, FatG: 81},
	"cheese":         {Calories: 402, ProteinG: 25, CarbsG: 1.3, FatG: 33},
	"chicken breast": {Calories: 165, ProteinG: 31, CarbsG: 0, FatG: 3.6},
	"chickpeas":      {Calories: 164, ProteinG: 8.9, CarbsG: 27, FatG: 2.6},
	"egg":            {Calories: 155, ProteinG: 13, CarbsG: 1.1, FatG: 11},
	"garlic":         {Calories: 149, ProteinG: 6.4, CarbsG: 33, FatG: 0.5},
	"greek yogurt":   {Calories: 59, ProteinG: 10, CarbsG: 3.6, FatG: 0.4},
	"green onion":    {Calories: 32, ProteinG: 1.8, CarbsG: 7.3, FatG: 0.2},
	"lentils":        {Calories: 116, ProteinG: 9, CarbsG: 20, FatG: 0.4},
	"milk":           {Calories: 42, ProteinG: 3.4, CarbsG: 5, FatG: 1},
	"oats":           {Calories: 389, ProteinG: 16.9, CarbsG: 66, FatG: 6.9},
	"olive oil":      {Calories: 884, ProteinG: 0, CarbsG: 0, FatG: 100},
	"onion":          {Calories: 40, ProteinG: 1.1, CarbsG: 9.3, FatG: 0.1},
	"paneer":         {Calories: 265, ProteinG: 18, CarbsG: 1.2, FatG: 20.8},
	"pasta":          {Calories: 131, ProteinG: 5, CarbsG: 25, FatG: 1.1},
	"peanut butter":  {Calories: 588, ProteinG: 25, CarbsG: 20, FatG: 50},
	"potato":         {Calories: 77, ProteinG: 2, CarbsG: 17, FatG: 0.1},
	"rice":           {Calories: 130, ProteinG: 2.7, CarbsG: 28, FatG: 0.3},
	"salmon":         {Calories: 208, ProteinG: 20, CarbsG: 0, FatG: 13},
	"spinach":        {Calories: 23, ProteinG: 2.9, CarbsG: 3.6, FatG: 0.4},
	"sweet potato":   {Calories: 86, ProteinG: 1.6, CarbsG: 20, FatG: 0.1},
	"tofu":           {Calories: 76, ProteinG: 8, CarbsG: 1.9, FatG: 4.8},
	"tomato":         {Calories: 18, ProteinG: 0.9, CarbsG: 3.9, FatG: 0.2},
}
