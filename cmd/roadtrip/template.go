package main

const configTemplate = `# Roadtrip configuration
# ======================
# Where to read the season schedule and stadium distances from, and the
# defaults used when searching for itineraries.

# The schedule has one row per game. Columns are found by header name:
# "Home Team", "Away Team", "Game Date", "Day of Week", "Location" (the
# ballpark) and "Local Time". "Day of Week" and "Local Time" are optional.
#
# format: xlsx (default) or html. For html the first <table> whose header
# carries those columns is read and sheet/header_row are ignored.
# header_row: the row holding the column names (the published MLB
# schedule has a title on row 1).
schedule:
  path: "mlb_schedule_2025.xlsx"
  format: xlsx
  header_row: 2

# Optional pairwise mileage table with columns "Team 1", "Team 2" and
# "Distance (miles)". Each pair only needs to appear once.
distances:
  path: "mlb_distances.xlsx"
  header_row: 1

search:
  # Default trip length in days when --span is not given.
  # 0 means one day per team.
  max_span: 0
  # Longest trip a query may ask for.
  max_span_cap: 14

server:
  addr: ":8080"
  cache_size: 256   # searches remembered for repeat requests

# Home ballpark of each team, used for route maps.
stadiums:
  - team: D-backs
    name: "Chase Field - Phoenix"
    lat: 33.4455
    lon: -112.0667
  - team: Braves
    name: "Truist Park - Atlanta"
    lat: 33.8908
    lon: -84.4678
  - team: Orioles
    name: "Oriole Park at Camden Yards - Baltimore"
    lat: 39.2839
    lon: -76.6218
  - team: Red Sox
    name: "Fenway Park - Boston"
    lat: 42.3467
    lon: -71.0972
  - team: White Sox
    name: "Guaranteed Rate Field - Chicago"
    lat: 41.8299
    lon: -87.6338
  - team: Cubs
    name: "Wrigley Field - Chicago"
    lat: 41.9484
    lon: -87.6553
  - team: Reds
    name: "Great American Ball Park - Cincinnati"
    lat: 39.0979
    lon: -84.5073
  - team: Guardians
    name: "Progressive Field - Cleveland"
    lat: 41.4962
    lon: -81.6852
  - team: Rockies
    name: "Coors Field - Denver"
    lat: 39.7559
    lon: -104.9942
  - team: Tigers
    name: "Comerica Park - Detroit"
    lat: 42.3390
    lon: -83.0485
  - team: Astros
    name: "Minute Maid Park - Houston"
    lat: 29.7573
    lon: -95.3555
  - team: Royals
    name: "Kauffman Stadium - Kansas City"
    lat: 39.0516
    lon: -94.4803
  - team: Angels
    name: "Angel Stadium - Anaheim"
    lat: 33.8003
    lon: -117.8827
  - team: Dodgers
    name: "Dodger Stadium - Los Angeles"
    lat: 34.0739
    lon: -118.2400
  - team: Marlins
    name: "loanDepot Park - Miami"
    lat: 25.7780
    lon: -80.2197
  - team: Brewers
    name: "American Family Field - Milwaukee"
    lat: 43.0280
    lon: -87.9712
  - team: Twins
    name: "Target Field - Minneapolis"
    lat: 44.9817
    lon: -93.2773
  - team: Mets
    name: "Citi Field - New York"
    lat: 40.7571
    lon: -73.8458
  - team: Yankees
    name: "Yankee Stadium - New York"
    lat: 40.8296
    lon: -73.9262
  - team: Athletics
    name: "Oakland Coliseum - Oakland"
    lat: 37.7516
    lon: -122.2005
  - team: Phillies
    name: "Citizens Bank Park - Philadelphia"
    lat: 39.9057
    lon: -75.1665
  - team: Pirates
    name: "PNC Park - Pittsburgh"
    lat: 40.4469
    lon: -80.0057
  - team: Padres
    name: "Petco Park - San Diego"
    lat: 32.7073
    lon: -117.1570
  - team: Giants
    name: "Oracle Park - San Francisco"
    lat: 37.7786
    lon: -122.3893
  - team: Mariners
    name: "T-Mobile Park - Seattle"
    lat: 47.5914
    lon: -122.3325
  - team: Cardinals
    name: "Busch Stadium - St. Louis"
    lat: 38.6226
    lon: -90.1928
  - team: Rays
    name: "Tropicana Field - St. Petersburg"
    lat: 27.7683
    lon: -82.6534
  - team: Rangers
    name: "Globe Life Field - Arlington"
    lat: 32.7513
    lon: -97.0820
  - team: Blue Jays
    name: "Rogers Centre - Toronto"
    lat: 43.6414
    lon: -79.3894
  - team: Nationals
    name: "Nationals Park - Washington"
    lat: 38.8728
    lon: -77.0075
`
