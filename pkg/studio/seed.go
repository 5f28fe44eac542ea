package studio

import "chronicle/pkg/models"

// DefaultArticle is the article a fresh session opens with.
func DefaultArticle() models.Article {
	return models.Article{
		ID:       "1",
		Title:    "The Great Fire of London",
		Subtitle: "A structural post-mortem of a metropolis reborn through tragedy.",
		Author:   "Dr. Evelyn Blackwood",
		Date:     "September 1666",
		Content: "## The Spark in the Dark\n\n" +
			"It began in a bakery on Pudding Lane. Thomas Farriner, baker to King Charles II, had neglected to properly extinguish his oven before retiring. By 1 AM on September 2nd, the first flames licked the timber frames of the congested medieval city.\n\n" +
			"> \"A most horrid malicious bloody flame... it made me weep to see it.\" — Samuel Pepys\n\n" +
			"## A City of Timber\n\n" +
			"London in 1666 was a tinderbox. The summer had been unusually dry, and the city's dense architecture of overhanging jetties meant that a fire could jump from one side of a street to the other with ease. The primary fire-fighting method of the day, buckets and small squirts, proved laughably inadequate against the inferno.\n\n" +
			"### The Royal Response\n\n" +
			"King Charles II and his brother James, Duke of York, eventually took charge of the scene. They realized that only the destruction of homes to create firebreaks could save the rest of the capital. Gunpowder was used to blow up blocks of houses, a desperate measure that finally halted the fire's march by September 5th.\n\n" +
			"## The Aftermath\n\n" +
			"While the human toll was recorded as surprisingly low (though many historians now believe the deaths of the poor were simply not counted), the structural loss was staggering. St. Paul's Cathedral was a hollow shell, and 13,200 houses lay in ash. Yet, from this disaster, Christopher Wren would imagine a London of stone and wide avenues, a city built to survive.",
		CoverImage: "https://images.unsplash.com/photo-1599408162162-cd41624c8789?auto=format&fit=crop&q=80&w=1200",
		Footnotes: []models.Footnote{
			{ID: 1, Text: "Pepys, S. (1666). The Diary of Samuel Pepys."},
			{ID: 2, Text: "Tinniswood, A. (2003). By Permission of Heaven: The Story of the Great Fire of London."},
		},
	}
}
