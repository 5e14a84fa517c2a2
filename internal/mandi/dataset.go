package mandi

// curatedPrices holds realistic quotes for the top commodities, in ₹ per
// quintal, sourced from typical Agmarknet ranges. The Date field is a marker
// resolved against the service clock: "" means today, "yesterday" means the
// previous day (kept for day-over-day trends).
var curatedPrices = []Price{
	// Tomato
	{Commodity: "Tomato", State: "Maharashtra", District: "Pune", Market: "Pune (Gultekadi)", Variety: "Hybrid", MinPrice: 800, MaxPrice: 1800, ModalPrice: 1200},
	{Commodity: "Tomato", State: "Maharashtra", District: "Nashik", Market: "Nashik", Variety: "Local", MinPrice: 700, MaxPrice: 1600, ModalPrice: 1100},
	{Commodity: "Tomato", State: "Karnataka", District: "Kolar", Market: "Kolar", Variety: "Hybrid", MinPrice: 900, MaxPrice: 2000, ModalPrice: 1400},
	{Commodity: "Tomato", State: "Madhya Pradesh", District: "Indore", Market: "Indore (Holkar)", Variety: "Local", MinPrice: 600, MaxPrice: 1500, ModalPrice: 1000},
	{Commodity: "Tomato", State: "Tamil Nadu", District: "Madurai", Market: "Madurai", Variety: "Hybrid", MinPrice: 1000, MaxPrice: 2200, ModalPrice: 1500},

	// Onion
	{Commodity: "Onion", State: "Maharashtra", District: "Nashik", Market: "Lasalgaon", Variety: "Red", MinPrice: 1200, MaxPrice: 2800, ModalPrice: 2000},
	{Commodity: "Onion", State: "Maharashtra", District: "Pune", Market: "Pune (Gultekadi)", Variety: "Red", MinPrice: 1400, MaxPrice: 2600, ModalPrice: 1900},
	{Commodity: "Onion", State: "Karnataka", District: "Bangalore", Market: "Bangalore", Variety: "Bellary Red", MinPrice: 1300, MaxPrice: 2500, ModalPrice: 1800},
	{Commodity: "Onion", State: "Rajasthan", District: "Jodhpur", Market: "Jodhpur", Variety: "Local", MinPrice: 1000, MaxPrice: 2200, ModalPrice: 1600},

	// Potato
	{Commodity: "Potato", State: "Uttar Pradesh", District: "Agra", Market: "Agra", Variety: "Jyoti", MinPrice: 800, MaxPrice: 1400, ModalPrice: 1100},
	{Commodity: "Potato", State: "West Bengal", District: "Hooghly", Market: "Hooghly", Variety: "Local", MinPrice: 700, MaxPrice: 1200, ModalPrice: 900},
	{Commodity: "Potato", State: "Punjab", District: "Jalandhar", Market: "Jalandhar", Variety: "Pukhraj", MinPrice: 900, MaxPrice: 1500, ModalPrice: 1200},
	{Commodity: "Potato", State: "Madhya Pradesh", District: "Indore", Market: "Indore (Holkar)", Variety: "Local", MinPrice: 850, MaxPrice: 1350, ModalPrice: 1050},

	// Mango
	{Commodity: "Mango", State: "Maharashtra", District: "Ratnagiri", Market: "Ratnagiri", Variety: "Alphonso", MinPrice: 5000, MaxPrice: 12000, ModalPrice: 8000},
	{Commodity: "Mango", State: "Uttar Pradesh", District: "Lucknow", Market: "Lucknow", Variety: "Dasheri", MinPrice: 3000, MaxPrice: 6000, ModalPrice: 4500},
	{Commodity: "Mango", State: "Andhra Pradesh", District: "Krishna", Market: "Vijayawada", Variety: "Banganapalli", MinPrice: 2500, MaxPrice: 5500, ModalPrice: 4000},

	// Banana
	{Commodity: "Banana", State: "Tamil Nadu", District: "Trichy", Market: "Trichy", Variety: "Poovan", MinPrice: 600, MaxPrice: 1200, ModalPrice: 900},
	{Commodity: "Banana", State: "Maharashtra", District: "Jalgaon", Market: "Jalgaon", Variety: "G-9", MinPrice: 500, MaxPrice: 1000, ModalPrice: 750},
	{Commodity: "Banana", State: "Karnataka", District: "Bangalore", Market: "Bangalore", Variety: "Elakki", MinPrice: 1500, MaxPrice: 3000, ModalPrice: 2200},

	// Cabbage
	{Commodity: "Cabbage", State: "Maharashtra", District: "Pune", Market: "Pune (Gultekadi)", Variety: "Local", MinPrice: 400, MaxPrice: 1000, ModalPrice: 700},
	{Commodity: "Cabbage", State: "Karnataka", District: "Bangalore", Market: "Bangalore", Variety: "Round", MinPrice: 500, MaxPrice: 1200, ModalPrice: 800},

	// Wheat
	{Commodity: "Wheat", State: "Madhya Pradesh", District: "Indore", Market: "Indore (Holkar)", Variety: "Lokwan", MinPrice: 2200, MaxPrice: 2800, ModalPrice: 2500},
	{Commodity: "Wheat", State: "Punjab", District: "Amritsar", Market: "Amritsar", Variety: "PBW-343", MinPrice: 2300, MaxPrice: 2700, ModalPrice: 2550},
	{Commodity: "Wheat", State: "Rajasthan", District: "Jaipur", Market: "Jaipur", Variety: "Raj-3765", MinPrice: 2100, MaxPrice: 2600, ModalPrice: 2400},

	// Rice
	{Commodity: "Rice", State: "West Bengal", District: "Hooghly", Market: "Hooghly", Variety: "Minikit", MinPrice: 2800, MaxPrice: 3800, ModalPrice: 3200},
	{Commodity: "Rice", State: "Andhra Pradesh", District: "Nellore", Market: "Nellore", Variety: "Sona Masoori", MinPrice: 3500, MaxPrice: 4500, ModalPrice: 4000},
	{Commodity: "Rice", State: "Punjab", District: "Amritsar", Market: "Amritsar", Variety: "Basmati", MinPrice: 4000, MaxPrice: 7000, ModalPrice: 5500},

	// Apple
	{Commodity: "Apple", State: "Himachal Pradesh", District: "Shimla", Market: "Shimla", Variety: "Royal Delicious", MinPrice: 4000, MaxPrice: 8000, ModalPrice: 6000},
	{Commodity: "Apple", State: "Jammu & Kashmir", District: "Srinagar", Market: "Srinagar", Variety: "Red Delicious", MinPrice: 3500, MaxPrice: 7500, ModalPrice: 5500},

	// Cauliflower
	{Commodity: "Cauliflower", State: "Maharashtra", District: "Pune", Market: "Pune (Gultekadi)", Variety: "Local", MinPrice: 500, MaxPrice: 1500, ModalPrice: 900},
	{Commodity: "Cauliflower", State: "Uttar Pradesh", District: "Lucknow", Market: "Lucknow", Variety: "Snow Ball", MinPrice: 600, MaxPrice: 1400, ModalPrice: 1000},

	// Chilli
	{Commodity: "Green Chilli", State: "Maharashtra", District: "Pune", Market: "Pune (Gultekadi)", Variety: "Local", MinPrice: 1500, MaxPrice: 4000, ModalPrice: 2500},
	{Commodity: "Green Chilli", State: "Andhra Pradesh", District: "Guntur", Market: "Guntur", Variety: "Teja", MinPrice: 2000, MaxPrice: 5000, ModalPrice: 3500},

	// Garlic
	{Commodity: "Garlic", State: "Madhya Pradesh", District: "Indore", Market: "Indore (Holkar)", Variety: "Local", MinPrice: 3000, MaxPrice: 6000, ModalPrice: 4500},
	{Commodity: "Garlic", State: "Rajasthan", District: "Jaipur", Market: "Jaipur", Variety: "Desi", MinPrice: 2800, MaxPrice: 5500, ModalPrice: 4000},

	// Brinjal
	{Commodity: "Brinjal", State: "Maharashtra", District: "Pune", Market: "Pune (Gultekadi)", Variety: "Round", MinPrice: 500, MaxPrice: 1500, ModalPrice: 1000},
	{Commodity: "Brinjal", State: "Karnataka", District: "Bangalore", Market: "Bangalore", Variety: "Long", MinPrice: 600, MaxPrice: 1800, ModalPrice: 1200},

	// Previous day, kept for day-over-day trends.
	{Commodity: "Tomato", State: "Maharashtra", District: "Pune", Market: "Pune (Gultekadi)", Variety: "Hybrid", MinPrice: 850, MaxPrice: 1900, ModalPrice: 1300, Date: "yesterday"},
	{Commodity: "Onion", State: "Maharashtra", District: "Nashik", Market: "Lasalgaon", Variety: "Red", MinPrice: 1100, MaxPrice: 2700, ModalPrice: 1900, Date: "yesterday"},
	{Commodity: "Potato", State: "Uttar Pradesh", District: "Agra", Market: "Agra", Variety: "Jyoti", MinPrice: 850, MaxPrice: 1450, ModalPrice: 1150, Date: "yesterday"},
	{Commodity: "Cabbage", State: "Maharashtra", District: "Pune", Market: "Pune (Gultekadi)", Variety: "Local", MinPrice: 350, MaxPrice: 950, ModalPrice: 650, Date: "yesterday"},
	{Commodity: "Wheat", State: "Madhya Pradesh", District: "Indore", Market: "Indore (Holkar)", Variety: "Lokwan", MinPrice: 2200, MaxPrice: 2800, ModalPrice: 2500, Date: "yesterday"},
	{Commodity: "Rice", State: "West Bengal", District: "Hooghly", Market: "Hooghly", Variety: "Minikit", MinPrice: 2750, MaxPrice: 3750, ModalPrice: 3150, Date: "yesterday"},
}
